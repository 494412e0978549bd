package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Selection actions
type MoveEntryAction struct {
	Direction int // -1 towards the front, +1 towards the back
}

func (a MoveEntryAction) Type() string { return "move_entry" }

type RemoveEntryAction struct{}

func (a RemoveEntryAction) Type() string { return "remove_entry" }

type ClearAllAction struct{}

func (a ClearAllAction) Type() string { return "clear_all" }

// Intake actions
type OpenPickerAction struct{}

func (a OpenPickerAction) Type() string { return "open_picker" }

type PasteAction struct{}

func (a PasteAction) Type() string { return "paste" }

// DropAction carries text delivered by a bracketed paste
type DropAction struct {
	Text string
}

func (a DropAction) Type() string { return "drop" }

// Command actions
type UploadAction struct{}

func (a UploadAction) Type() string { return "upload" }

type ShowLogAction struct{}

func (a ShowLogAction) Type() string { return "show_log" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
