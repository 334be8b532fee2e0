package theme

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

var (
	headerCell = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	cell = lipgloss.NewStyle().
		Foreground(Text).
		Padding(0, 1)
)

// CellStyler styles a single data cell. row and col are zero-based and
// exclude the header. Returning false keeps the default cell style.
type CellStyler func(row, col int) (lipgloss.Style, bool)

// Table renders rows under headers with the palette's border and header
// styles.
func Table(headers []string, rows [][]string, styler CellStyler) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			if styler != nil {
				if s, ok := styler(row, col); ok {
					return s.Padding(0, 1)
				}
			}
			return cell
		})
	return t.String()
}
