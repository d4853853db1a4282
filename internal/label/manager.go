package label

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lachiem1/billlabel/internal/images"
)

// Session keys mirror the browser build of this tool so an exported session
// store stays recognizable.
const (
	sessionKeyEntries      = "receipt_labeling_savedData"
	sessionKeyImportedFile = "receipt_labeling_importedFileName"
	sessionKeyImages       = "receipt_labeling_selectedImages"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityError
)

// Notifier receives user-facing notifications. The manager is agnostic to
// how they are presented.
type Notifier interface {
	Notify(title, message string, severity Severity)
}

// SessionStore is the session-scoped persistence port. It is best-effort:
// the manager logs failures and carries on, it never surfaces them as
// data-loss errors.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Manager binds the entry store, the edit buffer, and the image navigator.
// The current bill is either unbound (scratch edits) or bound to a store
// index, in which case every buffer mutation writes a fresh snapshot back
// into that slot. All mutation happens on the UI event loop, so no locking.
type Manager struct {
	store    Store
	buffer   Bill
	selected int // index into the store, -1 when unbound
	nav      *images.Sequence
	session  SessionStore
	notifier Notifier
	logger   *slog.Logger

	importedFile string

	now func() time.Time
}

func NewManager(nav *images.Sequence, session SessionStore, notifier Notifier, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		buffer:   NewBill(),
		selected: -1,
		nav:      nav,
		session:  session,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Buffer returns a copy of the edit buffer.
func (m *Manager) Buffer() Bill {
	return m.buffer.clone()
}

func (m *Manager) Entries() []Entry {
	return m.store.Entries()
}

// Selected returns the bound store index, or -1 when unbound.
func (m *Manager) Selected() int {
	return m.selected
}

func (m *Manager) ImportedFile() string {
	return m.importedFile
}

// Restore loads entries, the imported file name, and the image list from
// the session store. Missing or unreadable state is skipped silently.
func (m *Manager) Restore(ctx context.Context) {
	if m.session == nil {
		return
	}
	if raw, ok, err := m.session.Get(ctx, sessionKeyEntries); err != nil {
		m.logger.Warn("restore entries", "error", err)
	} else if ok {
		var entries []Entry
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			m.logger.Warn("restore entries", "error", err)
		} else {
			m.store.Replace(entries)
		}
	}
	if name, ok, err := m.session.Get(ctx, sessionKeyImportedFile); err != nil {
		m.logger.Warn("restore imported file", "error", err)
	} else if ok {
		m.importedFile = name
	}
	if raw, ok, err := m.session.Get(ctx, sessionKeyImages); err != nil {
		m.logger.Warn("restore images", "error", err)
	} else if ok {
		var imgs []images.Image
		if err := json.Unmarshal([]byte(raw), &imgs); err != nil {
			m.logger.Warn("restore images", "error", err)
		} else if len(imgs) > 0 {
			m.nav.SetImages(imgs)
		}
	}
}

// SetImages replaces the loaded image set and resets the edit buffer to a
// blank bill. An empty list is rejected with a notification.
func (m *Manager) SetImages(list []images.Image) error {
	if len(list) == 0 {
		m.notify("No images found", "Please select a folder containing image files.", SeverityError)
		return ErrNoImages
	}
	m.nav.SetImages(list)
	m.buffer = NewBill()
	m.selected = -1
	m.persistImages()
	return nil
}

// AddBill starts a blank bill for the current image: a new entry is
// disambiguated against existing names sharing the image's stem, inserted
// at the front of the store, and the buffer binds to it.
func (m *Manager) AddBill() error {
	current, ok := m.nav.Current()
	if !ok {
		m.notify("No image selected", "Please select an image first.", SeverityError)
		return ErrNoImageSelected
	}

	stem := StripExt(current.Name)
	var existing []string
	for _, e := range m.store.Entries() {
		if strings.HasPrefix(e.ImageFilename, stem) {
			existing = append(existing, e.ImageFilename)
		}
	}
	name := NextImageFilename(current.Name, existing)

	m.store.InsertFront(NewEntry(name, m.now()))
	m.buffer = NewBill()
	m.selected = 0
	m.persistEntries()
	m.notify("New bill started",
		fmt.Sprintf("Blank bill for %s added. Fill in the details.", name), SeverityInfo)
	return nil
}

// SelectEntry loads the entry's scan data into the edit buffer and binds to
// it, then tries to move the navigator to the matching image. A missing
// image is reported but does not undo the selection.
func (m *Manager) SelectEntry(index int) error {
	entry, ok := m.store.At(index)
	if !ok {
		return nil
	}
	m.selected = index
	m.buffer = entry.Bill()

	for i, img := range m.nav.Images() {
		if MatchesImage(entry.ImageFilename, img.Name) {
			m.nav.SetIndex(i)
			return nil
		}
	}
	m.notify("Image not found",
		fmt.Sprintf("Image not found: %s", entry.ImageFilename), SeverityError)
	return ErrImageNotFound
}

// RemoveEntry deletes a store entry, keeping the binding consistent: the
// bound entry unbinds, a bound index past the removed slot shifts down.
func (m *Manager) RemoveEntry(index int) {
	if !m.store.Remove(index) {
		return
	}
	switch {
	case m.selected == index:
		m.selected = -1
	case m.selected > index:
		m.selected--
	}
	m.persistEntries()
}

// ClearAll empties the store and unbinds.
func (m *Manager) ClearAll() {
	m.store.Clear()
	m.selected = -1
	m.persistEntries()
}

// Edit-buffer mutators. Each one recomputes derived totals through the
// Bill methods, then writes the snapshot back when bound.

func (m *Manager) SetMerchant(merchant string) {
	m.buffer.Merchant = merchant
	m.writeBack()
}

func (m *Manager) SetReceiptDate(date string) {
	m.buffer.ReceiptDate = date
	m.writeBack()
}

func (m *Manager) SetItemSKU(index int, sku string) {
	m.buffer.SetItemSKU(index, sku)
	m.writeBack()
}

func (m *Manager) SetItemName(index int, name string) {
	m.buffer.SetItemName(index, name)
	m.writeBack()
}

func (m *Manager) SetItemQuantity(index int, quantity float64) {
	m.buffer.SetItemQuantity(index, quantity)
	m.writeBack()
}

func (m *Manager) SetItemUnitPrice(index int, unitPrice float64) {
	m.buffer.SetItemUnitPrice(index, unitPrice)
	m.writeBack()
}

func (m *Manager) AddItem() {
	m.buffer.AddItem()
	m.writeBack()
}

func (m *Manager) RemoveItem(index int) error {
	if err := m.buffer.RemoveItem(index); err != nil {
		return err
	}
	m.writeBack()
	return nil
}

// writeBack mirrors the buffer into the bound store slot with a fresh
// timestamp. Unbound edits stay in the buffer.
func (m *Manager) writeBack() {
	entry, ok := m.store.At(m.selected)
	if !ok {
		return
	}
	entry.ScanResult = snapshot(m.buffer)
	entry.Timestamp = m.now().UTC().Format(time.RFC3339)
	m.store.Set(m.selected, entry)
	m.persistEntries()
}

// Export serializes the store, refusing when there is nothing to save.
func (m *Manager) Export() ([]byte, error) {
	if m.store.Len() == 0 {
		m.notify("No bills to save", "Please add at least one bill before saving.", SeverityError)
		return nil, ErrNoEntries
	}
	return EncodeEntries(m.store.Entries())
}

// ExportTarget is the imported file when one is tracked, otherwise the
// default export name.
func (m *Manager) ExportTarget() string {
	if m.importedFile != "" {
		return m.importedFile
	}
	return DefaultExportName
}

// Import replaces the store wholesale from a JSON document and unbinds.
// On any decode failure the store is left untouched.
func (m *Manager) Import(name string, data []byte) error {
	entries, err := DecodeEntries(data)
	if err != nil {
		m.notify("Import failed", "Please select a valid JSON file.", SeverityError)
		return err
	}
	m.store.Replace(entries)
	m.selected = -1
	m.importedFile = name
	m.persistEntries()
	m.persistImportedFile()
	m.notify("Data imported",
		fmt.Sprintf("Successfully imported %d entries.", len(entries)), SeverityInfo)
	return nil
}

// ClearImportedFile forgets the tracked import target without touching the
// entries.
func (m *Manager) ClearImportedFile() {
	m.importedFile = ""
	if m.session != nil {
		if err := m.session.Remove(context.Background(), sessionKeyImportedFile); err != nil {
			m.logger.Warn("remove imported file name", "error", err)
		}
	}
	m.notify("Imported file removed", "You can now import or create a new JSON file.", SeverityInfo)
}

func (m *Manager) notify(title, message string, severity Severity) {
	if m.notifier != nil {
		m.notifier.Notify(title, message, severity)
	}
}

func (m *Manager) persistEntries() {
	if m.session == nil {
		return
	}
	data, err := json.Marshal(m.store.Entries())
	if err != nil {
		m.logger.Warn("persist entries", "error", err)
		return
	}
	if err := m.session.Set(context.Background(), sessionKeyEntries, string(data)); err != nil {
		m.logger.Warn("persist entries", "error", err)
	}
}

func (m *Manager) persistImportedFile() {
	if m.session == nil {
		return
	}
	if err := m.session.Set(context.Background(), sessionKeyImportedFile, m.importedFile); err != nil {
		m.logger.Warn("persist imported file name", "error", err)
	}
}

func (m *Manager) persistImages() {
	if m.session == nil {
		return
	}
	data, err := json.Marshal(m.nav.Images())
	if err != nil {
		m.logger.Warn("persist images", "error", err)
		return
	}
	if err := m.session.Set(context.Background(), sessionKeyImages, string(data)); err != nil {
		m.logger.Warn("persist images", "error", err)
	}
}
