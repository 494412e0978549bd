package modes

import (
	"dropzone/internal/ui/input/types"
	tea "github.com/charmbracelet/bubbletea"
)

// PickerMode leaves navigation keys to the file picker and only claims the
// keys that close it.
type PickerMode struct{}

func NewPickerMode() *PickerMode {
	return &PickerMode{}
}

func (m *PickerMode) Name() string {
	return "picker"
}

func (m *PickerMode) Enter(ctx types.Context) []types.Action {
	return []types.Action{types.OpenPickerAction{}}
}

func (m *PickerMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *PickerMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Paste {
		return []types.Action{types.DropAction{Text: string(msg.Runes)}}, true
	}
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "q":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	}
	return nil, false
}
