package modes

import (
	"dropzone/internal/ui/input/types"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PathEntryMode reads one or more paths typed by the user
type PathEntryMode struct {
	textInputMode TextInputMode
}

func NewPathEntryMode(ti *textinput.Model) *PathEntryMode {
	return &PathEntryMode{
		textInputMode: NewTextInputMode(types.ModePathEntry, "path", "Add path: ", ti),
	}
}

func (m *PathEntryMode) Name() string {
	return m.textInputMode.Name()
}

func (m *PathEntryMode) Prompt() string {
	return m.textInputMode.prompt
}

func (m *PathEntryMode) Enter(ctx types.Context) []types.Action {
	return m.textInputMode.Enter(ctx)
}

func (m *PathEntryMode) Exit(ctx types.Context) []types.Action {
	return m.textInputMode.Exit(ctx)
}

func (m *PathEntryMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	return m.textInputMode.HandleKey(msg, ctx)
}
