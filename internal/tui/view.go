package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	focusedPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62"))

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))

	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	imageStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
)

const footerHeight = 2

// viewerBounds is the interior of the viewer pane in screen cells. Mouse
// coordinates are translated into this box before they reach the viewport.
func (m Model) viewerBounds() (x0, y0, w, h int) {
	paneW := m.width / 2
	if paneW < 6 {
		paneW = 6
	}
	paneH := m.height - footerHeight
	if paneH < 6 {
		paneH = 6
	}
	// One cell of border on each side, one header line inside.
	return 1, 2, paneW - 2, paneH - 3
}

func (m Model) entriesPageSize() int {
	h := (m.height-footerHeight)/2 - 3
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	paneW := m.width / 2
	bodyH := m.height - footerHeight

	left := m.viewerView(paneW, bodyH)
	rightW := m.width - paneW
	formH := bodyH - (m.entriesPageSize() + 3)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.formView(rightW, formH),
		m.entriesView(rightW, m.entriesPageSize()+3),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.footerView())
}

func (m Model) paneFrame(focused bool) lipgloss.Style {
	if focused {
		return focusedPaneStyle
	}
	return paneStyle
}

func (m Model) viewerView(paneW, paneH int) string {
	_, _, w, h := m.viewerBounds()

	header := dimStyle.Render("no image")
	if img, ok := m.nav.Current(); ok {
		header = fmt.Sprintf("%s  %s",
			titleStyle.Render(img.Name),
			dimStyle.Render(fmt.Sprintf("%d/%d  %s", m.nav.Index()+1, m.nav.Len(), m.zoomHUD())))
	}

	canvas := m.renderCanvas(w, h)

	content := lipgloss.JoinVertical(lipgloss.Left, header, canvas)
	return m.paneFrame(m.focus == focusViewer).Width(paneW - 2).Height(paneH - 2).Render(content)
}

// renderCanvas draws the image as a shaded rectangle placed and sized by the
// viewport transform, clipped to the pane.
func (m Model) renderCanvas(w, h int) string {
	scale := m.vp.Zoom
	// The image box starts at 80% of the pane, centered. Panning moves the
	// scaled box by the raw pointer delta.
	imgW := 0.8 * float64(w) * scale
	imgH := 0.8 * float64(h) * scale
	cx := float64(w)/2 + m.vp.Pan.X
	cy := float64(h)/2 + m.vp.Pan.Y

	x0 := int(cx - imgW/2)
	y0 := int(cy - imgH/2)
	x1 := int(cx + imgW/2)
	y1 := int(cy + imgH/2)

	_, hasImage := m.nav.Current()
	var b strings.Builder
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			if hasImage && col >= x0 && col < x1 && row >= y0 && row < y1 {
				b.WriteRune('▒')
			} else {
				b.WriteRune(' ')
			}
		}
		if row < h-1 {
			b.WriteRune('\n')
		}
	}
	return imageStyle.Render(b.String())
}

func (m Model) zoomHUD() string {
	hud := fmt.Sprintf("%.1fx", m.vp.Zoom)
	if m.vp.Pan.X != 0 || m.vp.Pan.Y != 0 {
		hud += fmt.Sprintf(" (%.0f,%.0f)", m.vp.Pan.X, m.vp.Pan.Y)
	}
	if m.vp.Dragging() {
		hud += " drag"
	}
	return hud
}

func (m Model) formView(paneW, paneH int) string {
	buffer := m.mgr.Buffer()

	title := titleStyle.Render("Bill")
	if m.mgr.Selected() >= 0 {
		title += dimStyle.Render(fmt.Sprintf("  editing #%d", m.mgr.Selected()+1))
	} else {
		title += dimStyle.Render("  unsaved")
	}

	lines := []string{
		title,
		m.fieldLine(fieldMerchant, "Merchant", buffer.Merchant),
		m.fieldLine(fieldDate, "Date", buffer.ReceiptDate),
	}
	for i, item := range buffer.Items {
		base := itemFieldBase + i*itemFieldsPer
		lines = append(lines,
			dimStyle.Render(fmt.Sprintf("item %d", i+1))+
				dimStyle.Render(fmt.Sprintf("  total %s", formatAmount(item.TotalPrice))),
			m.fieldLine(base, "  SKU", item.SKU),
			m.fieldLine(base+1, "  Name", item.Name),
			m.fieldLine(base+2, "  Qty", formatAmount(item.Quantity)),
			m.fieldLine(base+3, "  Price", formatAmount(item.UnitPrice)),
		)
	}
	lines = append(lines,
		labelStyle.Render("Total qty  ")+formatAmount(buffer.TotalQuantity)+
			labelStyle.Render("   Total paid  ")+formatAmount(buffer.TotalPayment),
	)

	return m.paneFrame(m.focus == focusForm).Width(paneW - 2).Height(paneH - 2).
		Render(strings.Join(lines, "\n"))
}

func (m Model) fieldLine(field int, name, value string) string {
	label := labelStyle.Render(fmt.Sprintf("%-8s", name))
	if m.focus == focusForm && m.formFocus == field {
		return cursorStyle.Render("› ") + label + m.input.View()
	}
	if value == "" {
		value = dimStyle.Render("-")
	}
	return "  " + label + value
}

func (m Model) entriesView(paneW, paneH int) string {
	entries := m.mgr.Entries()

	title := titleStyle.Render("Bills") + dimStyle.Render(fmt.Sprintf("  %d", len(entries)))
	if name := m.mgr.ImportedFile(); name != "" {
		title += dimStyle.Render("  from " + name)
	}

	lines := []string{title}
	if len(entries) == 0 {
		lines = append(lines, dimStyle.Render("no bills yet, press a to start one"))
	}

	visible := m.entriesPageSize()
	end := m.entriesOffset + visible
	if end > len(entries) {
		end = len(entries)
	}
	for i := m.entriesOffset; i < end; i++ {
		e := entries[i]
		row := fmt.Sprintf("%-20s %-16s %s",
			truncate(e.ImageFilename, 20),
			truncate(e.ScanResult.Merchant, 16),
			formatAmount(e.ScanResult.TotalPayment))
		switch {
		case m.focus == focusEntries && i == m.entriesCursor:
			row = cursorStyle.Render("› " + row)
		case i == m.mgr.Selected():
			row = selectedStyle.Render("* " + row)
		default:
			row = "  " + row
		}
		lines = append(lines, row)
	}

	return m.paneFrame(m.focus == focusEntries).Width(paneW - 2).Height(paneH - 2).
		Render(strings.Join(lines, "\n"))
}

func (m Model) footerView() string {
	if m.prompt != promptNone {
		label := "Save as"
		if m.prompt == promptImport {
			label = "Import from"
		}
		return labelStyle.Render(label+" ") + m.promptInput.View() + "\n" +
			dimStyle.Render("enter confirm · esc cancel")
	}

	toastLine := " "
	if m.toastText != "" {
		if m.toastErr {
			toastLine = errStyle.Render(m.toastText)
		} else {
			toastLine = okStyle.Render(m.toastText)
		}
	}

	var help string
	switch m.focus {
	case focusViewer:
		help = "←/→ image · +/-/0 zoom · drag pan · dbl-click zoom · a new bill · s save · i import · tab focus · q quit"
	case focusForm:
		help = "↑/↓ field · ctrl+n add item · ctrl+x remove item · esc back · tab focus"
	default:
		help = "↑/↓ move · enter edit · x remove · c clear all · a new bill · s save · i import · r detach file · tab focus"
	}
	return toastLine + "\n" + dimStyle.Render(help)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
