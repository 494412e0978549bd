package modes

import (
	"dropzone/internal/ui/input/types"
	tea "github.com/charmbracelet/bubbletea"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	// Terminals deliver dropped files as a bracketed paste of their paths
	if msg.Paste {
		return []types.Action{types.DropAction{Text: string(msg.Runes)}}, true
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyShiftUp:
		return m.move(ctx, -1)

	case tea.KeyShiftDown:
		return m.move(ctx, 1)

	case tea.KeyDelete:
		return m.remove(ctx)

	case tea.KeyCtrlV:
		return []types.Action{types.PasteAction{}}, true

	case tea.KeyEnter, tea.KeySpace:
		return []types.Action{types.ChangeModeAction{Mode: types.ModePicker}}, true
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case "K":
		return m.move(ctx, -1)

	case "J":
		return m.move(ctx, 1)

	case "x":
		return m.remove(ctx)

	case "o":
		return []types.Action{types.ChangeModeAction{Mode: types.ModePicker}}, true

	case "a":
		return []types.Action{types.ChangeModeAction{Mode: types.ModePathEntry}}, true

	case "p":
		return []types.Action{types.PasteAction{}}, true

	case "C":
		// Clear is unavailable while the selection is empty
		if ctx.TotalItems() == 0 || ctx.IsUploading() {
			return nil, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeConfirmClear}}, true

	case "u":
		if ctx.TotalItems() == 0 || ctx.IsUploading() {
			return nil, true
		}
		return []types.Action{types.UploadAction{}}, true

	case "L":
		return []types.Action{types.ShowLogAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	return nil, false
}

func (m *NormalMode) move(ctx types.Context, direction int) ([]types.Action, bool) {
	if ctx.TotalItems() == 0 {
		return nil, true
	}
	return []types.Action{types.MoveEntryAction{Direction: direction}}, true
}

func (m *NormalMode) remove(ctx types.Context) ([]types.Action, bool) {
	if ctx.TotalItems() == 0 {
		return nil, true
	}
	return []types.Action{types.RemoveEntryAction{}}, true
}
