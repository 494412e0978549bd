package ui

import (
	"log"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dropzone/internal/config"
	"dropzone/internal/domain"
	"dropzone/internal/eventbus"
	"dropzone/internal/intake"
	"dropzone/internal/messages"
	"dropzone/internal/preview"
	"dropzone/internal/selection"
	"dropzone/internal/ui/input"
	inputtypes "dropzone/internal/ui/input/types"
	"dropzone/internal/ui/views"
	"dropzone/internal/upload"
)

const messageLines = 4

// Model represents the UI state
type Model struct {
	config    *config.Config
	bus       eventbus.EventBus
	manager   *selection.Manager
	funnel    *intake.Funnel
	previews  *preview.Cache
	submitter Submitter
	log       *messages.Log
	clipboard intake.Clipboard

	inputHandler *input.Handler
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	pagerOps     *PagerOps
	program      *tea.Program

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	picker  filepicker.Model

	width       int
	height      int
	cursor      int
	uploading   bool
	inPagerMode bool
}

// Submitter performs an upload of a selection snapshot
type Submitter interface {
	Submit(entries []domain.Entry) (*upload.Receipt, error)
}

// NewModel creates a new UI model around an existing selection. Entries
// already in the selection get their preview handles here.
func NewModel(cfg *config.Config, bus eventbus.EventBus, manager *selection.Manager, previews *preview.Cache) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	fp := filepicker.New()
	fp.ShowHidden = cfg.UI.ShowHidden
	fp.FileAllowed = true
	fp.DirAllowed = false
	fp.CurrentDirectory = startDir(cfg.UI.StartDir)

	m := &Model{
		config:       cfg,
		bus:          bus,
		manager:      manager,
		funnel:       intake.NewFunnel(manager),
		previews:     previews,
		submitter:    newUploader(cfg, manager.Log(), bus),
		log:          manager.Log(),
		clipboard:    intake.SystemClipboard,
		inputHandler: input.New(),
		renderer:     views.NewRenderer(cfg.UI.ThumbnailWidth),
		helpRenderer: NewHelpRenderer(),
		keys:         newKeyMap(),
		help:         help.New(),
		spinner:      sp,
		picker:       fp,
	}

	for _, entry := range manager.Entries() {
		previews.Acquire(entry)
	}
	m.keys.setSelectionState(manager.Len(), false)
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pagerOps = NewPagerOps(p)
}

// SetSubmitter replaces the uploader
func (m *Model) SetSubmitter(s Submitter) {
	m.submitter = s
}

// SetClipboard replaces the clipboard
func (m *Model) SetClipboard(cb intake.Clipboard) {
	m.clipboard = cb
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.picker.Height = pickerHeight(msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case EventMsg:
		m.clampCursor()
		m.keys.setSelectionState(m.manager.Len(), m.uploading)
		return m, nil

	case uploadDoneMsg:
		m.uploading = false
		if msg.err != nil {
			log.Printf("Upload failed: %v", msg.err)
		} else if msg.receipt != nil {
			log.Printf("Upload receipt: %d file(s), %d bytes", len(msg.receipt.Files), msg.receipt.Bytes)
		}
		m.keys.setSelectionState(m.manager.Len(), m.uploading)
		return m, nil

	case spinner.TickMsg:
		if !m.uploading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerMsg:
		m.inPagerMode = false
		if msg.err != nil {
			// Pager failures are logged only
			log.Printf("%s pager failed: %v", msg.what, msg.err)
		}
		return m, nil
	}

	if m.inputHandler.GetMode() == inputtypes.ModePicker {
		return m, m.updatePicker(msg)
	}
	return m, m.inputHandler.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	actions, cmd := m.inputHandler.HandleKey(msg, m)
	if actions == nil && cmd == nil && m.inputHandler.GetMode() == inputtypes.ModePicker {
		return m.updatePicker(msg)
	}
	if len(actions) == 0 && cmd == nil {
		return nil
	}

	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	m.keys.setSelectionState(m.manager.Len(), m.uploading)
	return tea.Batch(cmds...)
}

// processAction executes one action produced by the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.MoveEntryAction:
		if err := m.manager.Move(m.cursor, a.Direction); err != nil {
			log.Printf("Move failed: %v", err)
			return nil
		}
		if target := m.cursor + a.Direction; target >= 0 && target < m.manager.Len() {
			m.cursor = target
		}

	case inputtypes.RemoveEntryAction:
		if _, err := m.manager.RemoveAt(m.cursor); err != nil {
			log.Printf("Remove failed: %v", err)
		}
		m.clampCursor()

	case inputtypes.ClearAllAction:
		if m.manager.Len() == 0 {
			return nil
		}
		m.manager.ClearAll()
		m.cursor = 0

	case inputtypes.OpenPickerAction:
		return m.picker.Init()

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModePathEntry {
			m.admitted(m.funnel.ReceiveText(domain.SourceChooser, a.Text))
		}

	case inputtypes.DropAction:
		m.admitted(m.funnel.ReceiveText(domain.SourceDrop, a.Text))

	case inputtypes.PasteAction:
		report, err := m.funnel.Paste(m.clipboard)
		if err != nil {
			return nil
		}
		m.admitted(report)

	case inputtypes.UploadAction:
		return m.startUpload()

	case inputtypes.ShowLogAction:
		return m.showInPager("log", m.helpRenderer.renderLogContent(m.log.Messages()))

	case inputtypes.ToggleHelpAction:
		return m.showInPager("help", m.helpRenderer.renderHelpContent(m.manager.Policy()))

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// admitted creates preview handles for newly added entries and moves the
// cursor onto the first of them.
func (m *Model) admitted(report selection.Report) {
	if report.Count() == 0 {
		return
	}
	for _, entry := range report.Added {
		m.previews.Acquire(entry)
	}
	m.cursor = m.manager.Len() - report.Count()
	m.clampCursor()
}

func (m *Model) startUpload() tea.Cmd {
	if m.uploading || m.manager.Len() == 0 {
		return nil
	}
	m.uploading = true
	snapshot := m.manager.Entries()
	submitter := m.submitter

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		receipt, err := submitter.Submit(snapshot)
		return uploadDoneMsg{receipt: receipt, err: err}
	})
}

func (m *Model) showInPager(what, content string) tea.Cmd {
	m.inPagerMode = true
	pager := m.pagerOps
	return func() tea.Msg {
		return pagerMsg{what: what, err: pager.Show(content)}
	}
}

// updatePicker forwards a message to the file picker and admits a file when
// one is chosen. The picker stays open so several files can be added.
func (m *Model) updatePicker(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.admitted(m.funnel.Receive(domain.SourceChooser, []string{path}))
		m.keys.setSelectionState(m.manager.Len(), m.uploading)
	}
	return cmd
}

func (m *Model) navigate(direction string) {
	switch direction {
	case "up":
		m.cursor--
	case "down":
		m.cursor++
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = m.manager.Len() - 1
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= m.manager.Len() {
		m.cursor = m.manager.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// CurrentIndex implements the input context
func (m *Model) CurrentIndex() int {
	return m.cursor
}

// TotalItems implements the input context
func (m *Model) TotalItems() int {
	return m.manager.Len()
}

// IsFull implements the input context
func (m *Model) IsFull() bool {
	return m.manager.IsFull()
}

// IsUploading implements the input context
func (m *Model) IsUploading() bool {
	return m.uploading
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	entries := m.manager.Entries()
	cards := make([]views.CardView, len(entries))
	for i, entry := range entries {
		handle, _ := m.previews.Peek(entry.ID)
		cards[i] = views.CardView{Entry: entry, Handle: handle}
	}

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Cards:         cards,
		SelectedIndex: m.cursor,
		MaxFiles:      m.manager.Policy().MaxFiles,
		Uploading:     m.uploading,
		Spinner:       m.spinner.View(),
		Messages:      m.log.Messages(),
		MessageLines:  messageLines,
		HelpView:      m.help.View(m.keys),
	}

	switch m.inputHandler.GetMode() {
	case inputtypes.ModePathEntry:
		state.InputMode = "path"
		state.Prompt = m.inputHandler.Prompt()
		if ti := m.inputHandler.TextInput(); ti != nil {
			state.TextInput = ti.View()
		}
	case inputtypes.ModePicker:
		state.InputMode = "picker"
		state.PickerDir = m.picker.CurrentDirectory
		state.PickerView = m.picker.View()
	case inputtypes.ModeConfirmClear:
		state.InputMode = "clear-confirm"
	}

	return m.renderer.Render(state)
}

func newUploader(cfg *config.Config, msgs *messages.Log, bus eventbus.EventBus) *upload.Submitter {
	s := upload.NewSubmitter(msgs, bus)
	s.Field = cfg.Upload.FieldName
	s.Delay = cfg.UploadDelay()
	return s
}

// startDir resolves the directory the picker opens in
func startDir(dir string) string {
	if dir != "" {
		return dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func pickerHeight(termHeight int) int {
	h := termHeight - 12 - messageLines
	if h < 3 {
		h = 3
	}
	return h
}
