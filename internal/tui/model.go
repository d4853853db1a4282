package tui

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lachiem1/billlabel/internal/images"
	"github.com/lachiem1/billlabel/internal/label"
	"github.com/lachiem1/billlabel/internal/viewport"
)

const (
	focusViewer = iota
	focusForm
	focusEntries
)

const (
	promptNone = iota
	promptExport
	promptImport
)

// Form fields are flattened: merchant, receipt date, then four fields per
// line item (sku, name, quantity, unit price).
const (
	fieldMerchant = 0
	fieldDate     = 1
	itemFieldBase = 2
	itemFieldsPer = 4
)

const doubleClickWindow = 400 * time.Millisecond

type toast struct {
	title    string
	message  string
	severity label.Severity
}

// toastHub collects notifications the manager emits synchronously during an
// update step so the model can drain them afterwards.
type toastHub struct {
	notes []toast
}

func (h *toastHub) Notify(title, message string, severity label.Severity) {
	h.notes = append(h.notes, toast{title: title, message: message, severity: severity})
}

func (h *toastHub) drain() []toast {
	notes := h.notes
	h.notes = nil
	return notes
}

type clearToastMsg struct {
	id int
}

type exportResultMsg struct {
	path      string
	overwrite bool
	err       error
}

type importResultMsg struct {
	path string
	data []byte
	err  error
}

type Model struct {
	mgr *label.Manager
	nav *images.Sequence
	hub *toastHub
	vp  viewport.State

	width  int
	height int

	focus     int
	formFocus int
	input     textinput.Model

	entriesCursor int
	entriesOffset int

	prompt      int
	promptInput textinput.Model

	lastClickAt  time.Time
	lastClickPos viewport.Point

	toastText string
	toastErr  bool
	toastID   int

	quitting bool
}

// NewProgram builds the notification hub, hands it to the manager factory
// and wires the resulting manager into a fresh model.
func NewProgram(nav *images.Sequence, newManager func(label.Notifier) *label.Manager) Model {
	hub := &toastHub{}

	input := textinput.New()
	input.Prompt = ""
	input.Width = 32

	promptInput := textinput.New()
	promptInput.Prompt = "> "
	promptInput.Placeholder = label.DefaultExportName
	promptInput.Width = 48

	m := Model{
		mgr:         newManager(hub),
		nav:         nav,
		hub:         hub,
		vp:          viewport.New(),
		focus:       focusViewer,
		input:       input,
		promptInput: promptInput,
	}
	m.seedInput()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clearToastMsg:
		if msg.id == m.toastID {
			m.toastText = ""
		}
		return m, nil

	case exportResultMsg:
		if msg.err != nil {
			return m.showToast(toast{
				title:    "Save failed",
				message:  "Could not save the file. Please try again.",
				severity: label.SeverityError,
			})
		}
		if msg.overwrite {
			return m.showToast(toast{
				title:   "File overwritten",
				message: "Changes saved to the imported file.",
			})
		}
		return m.showToast(toast{
			title:   "All bills saved",
			message: "All bills have been exported to " + msg.path + ".",
		})

	case importResultMsg:
		if msg.err != nil {
			return m.showToast(toast{
				title:    "Import failed",
				message:  "Could not read the file. Please try again.",
				severity: label.SeverityError,
			})
		}
		m.mgr.Import(msg.path, msg.data)
		m.entriesCursor = 0
		m.entriesOffset = 0
		return m.flushToasts()

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x0, y0, w, h := m.viewerBounds()
	local := viewport.Point{X: float64(msg.X - x0), Y: float64(msg.Y - y0)}
	inside := msg.X >= x0 && msg.X < x0+w && msg.Y >= y0 && msg.Y < y0+h

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if inside {
				m.vp.ZoomIn()
			}
		case tea.MouseButtonWheelDown:
			if inside {
				m.vp.ZoomOut()
			}
		case tea.MouseButtonLeft:
			if !inside {
				return m, nil
			}
			now := time.Now()
			if now.Sub(m.lastClickAt) <= doubleClickWindow && m.lastClickPos == local {
				m.vp.ZoomToPoint(local, float64(w), float64(h))
				m.lastClickAt = time.Time{}
				return m, nil
			}
			m.lastClickAt = now
			m.lastClickPos = local
			m.vp.BeginDrag(local)
		}
	case tea.MouseActionMotion:
		m.vp.UpdateDrag(local)
	case tea.MouseActionRelease:
		m.vp.EndDrag()
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt != promptNone {
		return m.updatePromptKey(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		m.focus = (m.focus + 1) % 3
		m.syncInputFocus()
		return m, nil
	case "shift+tab":
		m.focus = (m.focus + 2) % 3
		m.syncInputFocus()
		return m, nil
	}

	switch m.focus {
	case focusViewer:
		return m.updateViewerKey(msg)
	case focusForm:
		return m.updateFormKey(msg)
	default:
		return m.updateEntriesKey(msg)
	}
}

func (m Model) updateViewerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "left", "h":
		if m.nav.Prev() {
			m.vp.ResetZoom()
		}
	case "right", "l":
		if m.nav.Next() {
			m.vp.ResetZoom()
		}
	case "+", "=":
		m.vp.ZoomIn()
	case "-":
		m.vp.ZoomOut()
	case "0":
		m.vp.ResetZoom()
	case "a":
		return m.addBill()
	case "s":
		return m.openExportPrompt()
	case "i":
		return m.openImportPrompt()
	}
	return m, nil
}

func (m Model) updateFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusViewer
		m.syncInputFocus()
		return m, nil
	case "up":
		if m.formFocus > 0 {
			m.formFocus--
			m.seedInput()
		}
		return m, nil
	case "down", "enter":
		if m.formFocus < m.fieldCount()-1 {
			m.formFocus++
			m.seedInput()
		}
		return m, nil
	case "ctrl+n":
		m.mgr.AddItem()
		m.formFocus = itemFieldBase + (len(m.mgr.Buffer().Items)-1)*itemFieldsPer
		m.seedInput()
		return m.flushToasts()
	case "ctrl+x":
		if item, ok := m.focusedItem(); ok {
			if err := m.mgr.RemoveItem(item); err != nil {
				return m.showToast(toast{
					title:    "Cannot remove item",
					message:  "A bill needs at least one line item.",
					severity: label.SeverityError,
				})
			}
			m.clampFormFocus()
			m.seedInput()
		}
		return m.flushToasts()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyInput()
	next, flushCmd := m.flushToasts()
	return next, tea.Batch(cmd, flushCmd)
}

func (m Model) updateEntriesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.mgr.Entries()
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.entriesCursor > 0 {
			m.entriesCursor--
			m.ensureEntriesScrollWindow()
		}
	case "down", "j":
		if m.entriesCursor < len(entries)-1 {
			m.entriesCursor++
			m.ensureEntriesScrollWindow()
		}
	case "enter":
		if len(entries) == 0 {
			return m, nil
		}
		before := m.nav.Index()
		m.mgr.SelectEntry(m.entriesCursor)
		if m.nav.Index() != before {
			m.vp.ResetZoom()
		}
		m.formFocus = fieldMerchant
		m.seedInput()
		return m.flushToasts()
	case "x", "d":
		if len(entries) == 0 {
			return m, nil
		}
		m.mgr.RemoveEntry(m.entriesCursor)
		if m.entriesCursor >= len(m.mgr.Entries()) && m.entriesCursor > 0 {
			m.entriesCursor--
		}
		m.ensureEntriesScrollWindow()
		return m.flushToasts()
	case "c":
		m.mgr.ClearAll()
		m.entriesCursor = 0
		m.entriesOffset = 0
		return m.flushToasts()
	case "a":
		return m.addBill()
	case "s":
		return m.openExportPrompt()
	case "i":
		return m.openImportPrompt()
	case "r":
		m.mgr.ClearImportedFile()
		return m.flushToasts()
	}
	return m, nil
}

func (m Model) updatePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		// Dismissing the dialog is not an error: no change, no toast.
		m.prompt = promptNone
		m.promptInput.Blur()
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.promptInput.Value())
		if path == "" {
			return m, nil
		}
		prompt := m.prompt
		m.prompt = promptNone
		m.promptInput.Blur()
		switch prompt {
		case promptExport:
			data, err := m.mgr.Export()
			if err != nil {
				return m.flushToasts()
			}
			overwrite := path == m.mgr.ImportedFile()
			return m, writeFileCmd(path, data, overwrite)
		case promptImport:
			return m, readFileCmd(path)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)
	return m, cmd
}

func (m Model) addBill() (tea.Model, tea.Cmd) {
	if err := m.mgr.AddBill(); err == nil {
		m.entriesCursor = 0
		m.entriesOffset = 0
		m.formFocus = fieldMerchant
		m.focus = focusForm
		m.seedInput()
		m.syncInputFocus()
	}
	return m.flushToasts()
}

func (m Model) openExportPrompt() (tea.Model, tea.Cmd) {
	if len(m.mgr.Entries()) == 0 {
		// Surface the refusal without opening a prompt.
		m.mgr.Export()
		return m.flushToasts()
	}
	m.prompt = promptExport
	m.promptInput.SetValue(m.mgr.ExportTarget())
	m.promptInput.CursorEnd()
	m.promptInput.Focus()
	return m, nil
}

func (m Model) openImportPrompt() (tea.Model, tea.Cmd) {
	m.prompt = promptImport
	m.promptInput.SetValue("")
	m.promptInput.Focus()
	return m, nil
}

func writeFileCmd(path string, data []byte, overwrite bool) tea.Cmd {
	return func() tea.Msg {
		err := os.WriteFile(path, data, 0o600)
		return exportResultMsg{path: path, overwrite: overwrite, err: err}
	}
}

func readFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return importResultMsg{path: path, data: data, err: err}
	}
}

// fieldCount is the number of focusable form fields for the current buffer.
func (m Model) fieldCount() int {
	return itemFieldBase + len(m.mgr.Buffer().Items)*itemFieldsPer
}

// focusedItem maps the form focus to a line-item index when an item field
// is focused.
func (m Model) focusedItem() (int, bool) {
	if m.formFocus < itemFieldBase {
		return 0, false
	}
	return (m.formFocus - itemFieldBase) / itemFieldsPer, true
}

func (m *Model) clampFormFocus() {
	if count := m.fieldCount(); m.formFocus >= count {
		m.formFocus = count - 1
	}
}

// seedInput loads the focused field's current value into the shared input.
func (m *Model) seedInput() {
	m.input.SetValue(m.fieldValue(m.formFocus))
	m.input.CursorEnd()
}

func (m *Model) syncInputFocus() {
	if m.focus == focusForm {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m Model) fieldValue(field int) string {
	buffer := m.mgr.Buffer()
	switch field {
	case fieldMerchant:
		return buffer.Merchant
	case fieldDate:
		return buffer.ReceiptDate
	}
	item := (field - itemFieldBase) / itemFieldsPer
	if item >= len(buffer.Items) {
		return ""
	}
	switch (field - itemFieldBase) % itemFieldsPer {
	case 0:
		return buffer.Items[item].SKU
	case 1:
		return buffer.Items[item].Name
	case 2:
		return formatAmount(buffer.Items[item].Quantity)
	default:
		return formatAmount(buffer.Items[item].UnitPrice)
	}
}

// applyInput pushes the shared input's text into the manager, one write per
// keystroke so the store stays in step with the form.
func (m *Model) applyInput() {
	value := m.input.Value()
	switch m.formFocus {
	case fieldMerchant:
		m.mgr.SetMerchant(value)
		return
	case fieldDate:
		m.mgr.SetReceiptDate(value)
		return
	}
	item, ok := m.focusedItem()
	if !ok {
		return
	}
	switch (m.formFocus - itemFieldBase) % itemFieldsPer {
	case 0:
		m.mgr.SetItemSKU(item, value)
	case 1:
		m.mgr.SetItemName(item, value)
	case 2:
		m.mgr.SetItemQuantity(item, label.ParseAmount(value))
	default:
		m.mgr.SetItemUnitPrice(item, label.ParseAmount(value))
	}
}

func (m Model) showToast(t toast) (tea.Model, tea.Cmd) {
	m.toastText = t.title
	if t.message != "" {
		m.toastText += ": " + t.message
	}
	m.toastErr = t.severity == label.SeverityError
	m.toastID++
	id := m.toastID
	return m, tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearToastMsg{id: id}
	})
}

// flushToasts drains manager notifications raised during this update step
// into the toast line, keeping the last one visible.
func (m Model) flushToasts() (tea.Model, tea.Cmd) {
	notes := m.hub.drain()
	if len(notes) == 0 {
		return m, nil
	}
	return m.showToast(notes[len(notes)-1])
}

func (m *Model) ensureEntriesScrollWindow() {
	visible := m.entriesPageSize()
	if visible < 1 {
		visible = 1
	}
	if m.entriesCursor < m.entriesOffset {
		m.entriesOffset = m.entriesCursor
	}
	if m.entriesCursor >= m.entriesOffset+visible {
		m.entriesOffset = m.entriesCursor - visible + 1
	}
}
