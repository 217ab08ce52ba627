package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/tmux-quicklaunch/internal/format/table"
	uistate "github.com/atomicstack/tmux-quicklaunch/internal/ui/state"
)

const footerHelp = "↑/↓ move  enter launch  esc dismiss"

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text already carries ANSI styling
}

// View implements tea.Model. The first uistate.HeaderLines lines hold the
// query; result rows follow, each uistate.RowLines tall, so pointer
// hit-testing can map screen lines back to rows.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, m.queryLine())
	lines = append(lines, styledLine{})

	rows := m.display.VisibleRows()
	names := m.rowNames(rows)
	for i, row := range rows {
		lines = append(lines, m.buildRowLines(row, names[i])...)
	}
	if m.display.Scrollable {
		lines = append(lines, styledLine{text: m.scrollText(), style: styles.Scroll})
	}
	if len(rows) == 0 && strings.TrimSpace(m.lastQuery) != "" {
		lines = append(lines, styledLine{text: fmt.Sprintf("No matches for %q", uistate.Sanitize(m.lastQuery)), style: styles.Info})
	}
	if m.errMsg != "" {
		lines = append(lines, styledLine{text: fmt.Sprintf("Error: %s", uistate.Sanitize(m.errMsg)), style: styles.Error})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.footerText(), style: styles.Footer})
	}
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

// queryLine renders the query input. While a focus gain has the query
// selected the text is drawn highlighted and without a cursor, since the next
// edit replaces it.
func (m *Model) queryLine() styledLine {
	value := m.input.Value()
	if !m.overtype || value == "" {
		return styledLine{text: m.input.View(), raw: true}
	}
	return styledLine{
		text:          queryPrompt + uistate.Sanitize(value),
		style:         styles.QuerySelected,
		prefixStyle:   styles.QueryPrompt,
		highlightFrom: len([]rune(queryPrompt)),
	}
}

// rowNames lines up the kind badges of the visible rows, shortening names
// rather than badges when the overlay is narrow.
func (m *Model) rowNames(rows []uistate.Row) []string {
	cells := make([][]string, len(rows))
	for i, row := range rows {
		badge := ""
		if row.Kind != "" {
			badge = "[" + row.Kind + "]"
		}
		cells[i] = []string{row.Name, badge}
	}
	width := 0
	if m.width > 0 {
		width = m.width - lipgloss.Width(rowIndent)
	}
	return table.Fit(cells, []table.Alignment{table.AlignLeft, table.AlignRight}, width, 0)
}

const rowIndent = "▌ "

// buildRowLines renders a result as a name line with its kind badge and an
// indented path line. When width is known the text is padded so the
// selected background spans the full row.
func (m *Model) buildRowLines(row uistate.Row, name string) []styledLine {
	indicator := "▌"
	nameStyle, pathStyle := styles.Item, styles.ItemPath
	indicatorStyle := styles.ItemIndicator
	if row.Selected {
		nameStyle, pathStyle = styles.SelectedItem, styles.SelectedItemPath
		indicatorStyle = styles.SelectedItemIndicator
	}
	name = rowIndent + name
	path := indicator + "   " + row.Path
	return []styledLine{
		{text: m.pad(name), style: nameStyle, prefixStyle: indicatorStyle, highlightFrom: 1},
		{text: m.pad(path), style: pathStyle, prefixStyle: indicatorStyle, highlightFrom: 1},
	}
}

func (m *Model) pad(text string) string {
	if m.width <= 0 {
		return text
	}
	if fill := m.width - lipgloss.Width(text); fill > 0 {
		return text + strings.Repeat(" ", fill)
	}
	return text
}

func (m *Model) scrollText() string {
	rows := len(m.display.Rows)
	above := m.display.Offset
	below := rows - above - m.display.Visible
	if below < 0 {
		below = 0
	}
	return fmt.Sprintf("  %d/%d  (%d above, %d below)", m.results.Selected+1, rows, above, below)
}

func (m *Model) footerText() string {
	var status string
	switch {
	case m.backendErr != "":
		status = "index error: " + uistate.Sanitize(m.backendErr)
	case m.info.Total == 0:
		status = "indexing…"
	default:
		status = fmt.Sprintf("%d indexed (%d apps, %d files)", m.info.Total, m.info.Apps, m.info.Files)
	}
	return status + "  ·  " + footerHelp
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if m.width > 0 {
		m.input.Width = m.width - lipgloss.Width(queryPrompt) - 1
	}
	return nil
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: uistate.Truncate("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: "…"})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = uistate.Truncate(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}
