package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lachiem1/billlabel/internal/images"
	"github.com/lachiem1/billlabel/internal/label"
)

type memSession struct {
	values map[string]string
}

func (s *memSession) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memSession) Set(_ context.Context, key, value string) error {
	s.values[key] = value
	return nil
}

func (s *memSession) Remove(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}

func newTestModel(t *testing.T, imgs ...images.Image) Model {
	t.Helper()
	nav := &images.Sequence{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewProgram(nav, func(n label.Notifier) *label.Manager {
		return label.NewManager(nav, &memSession{values: map[string]string{}}, n, logger)
	})
	if len(imgs) > 0 {
		if err := m.mgr.SetImages(imgs); err != nil {
			t.Fatalf("SetImages: %v", err)
		}
	}
	m.width = 80
	m.height = 24
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func TestAddBillWithoutImageShowsError(t *testing.T) {
	m := newTestModel(t)

	m = step(t, m, key("a"))

	if got := len(m.mgr.Entries()); got != 0 {
		t.Fatalf("expected no entries, got %d", got)
	}
	if m.toastText == "" || !m.toastErr {
		t.Fatalf("expected error toast, got %q (err=%v)", m.toastText, m.toastErr)
	}
}

func TestAddBillFocusesFormAndTypingWritesBack(t *testing.T) {
	m := newTestModel(t, images.Image{Name: "r1.jpg", Path: "/tmp/r1.jpg"})

	m = step(t, m, key("a"))
	if m.focus != focusForm {
		t.Fatalf("focus = %d, want form", m.focus)
	}
	if got := len(m.mgr.Entries()); got != 1 {
		t.Fatalf("entries = %d, want 1", got)
	}

	m = step(t, m, key("A"))
	m = step(t, m, key("B"))

	if got := m.mgr.Entries()[0].ScanResult.Merchant; got != "AB" {
		t.Fatalf("stored merchant = %q, want AB", got)
	}
}

func TestQuantityFieldParsesAmount(t *testing.T) {
	m := newTestModel(t, images.Image{Name: "r1.jpg", Path: "/tmp/r1.jpg"})
	m = step(t, m, key("a"))

	// merchant -> date -> sku -> name -> qty
	for i := 0; i < 4; i++ {
		m = step(t, m, key("down"))
	}
	m = step(t, m, key("3"))

	if got := m.mgr.Buffer().Items[0].Quantity; got != 3 {
		t.Fatalf("quantity = %v, want 3", got)
	}
}

func TestExportPromptRefusedWhenEmpty(t *testing.T) {
	m := newTestModel(t, images.Image{Name: "r1.jpg", Path: "/tmp/r1.jpg"})

	m = step(t, m, key("s"))

	if m.prompt != promptNone {
		t.Fatalf("prompt opened with no bills")
	}
	if !m.toastErr {
		t.Fatalf("expected error toast, got %q", m.toastText)
	}
}

func TestExportPromptEscapeIsSilent(t *testing.T) {
	m := newTestModel(t, images.Image{Name: "r1.jpg", Path: "/tmp/r1.jpg"})
	m = step(t, m, key("a"))
	m = step(t, m, key("esc"))
	m = step(t, m, key("s"))
	if m.prompt != promptExport {
		t.Fatalf("prompt = %d, want export", m.prompt)
	}
	m.toastText = ""

	m = step(t, m, key("esc"))

	if m.prompt != promptNone {
		t.Fatalf("prompt still open after esc")
	}
	if m.toastText != "" {
		t.Fatalf("cancel produced toast %q", m.toastText)
	}
}

func TestWheelZoomInsideViewer(t *testing.T) {
	m := newTestModel(t, images.Image{Name: "r1.jpg", Path: "/tmp/r1.jpg"})

	x0, y0, _, _ := m.viewerBounds()
	m = step(t, m, tea.MouseMsg{
		X: x0 + 1, Y: y0 + 1,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonWheelUp,
	})

	if m.vp.Zoom != 1.2 {
		t.Fatalf("zoom = %v, want 1.2", m.vp.Zoom)
	}
}

func TestImageNavigationResetsViewport(t *testing.T) {
	m := newTestModel(t,
		images.Image{Name: "a.jpg", Path: "/tmp/a.jpg"},
		images.Image{Name: "b.jpg", Path: "/tmp/b.jpg"},
	)
	m.vp.ZoomIn()

	m = step(t, m, key("l"))

	if m.nav.Index() != 1 {
		t.Fatalf("index = %d, want 1", m.nav.Index())
	}
	if m.vp.Zoom != 1.0 {
		t.Fatalf("zoom = %v, want 1.0 after image change", m.vp.Zoom)
	}
}

func TestToastHubDrains(t *testing.T) {
	h := &toastHub{}
	h.Notify("one", "first", label.SeverityInfo)
	h.Notify("two", "second", label.SeverityError)

	notes := h.drain()
	if len(notes) != 2 {
		t.Fatalf("drained %d notes, want 2", len(notes))
	}
	if h.drain() != nil {
		t.Fatalf("second drain not empty")
	}
}
