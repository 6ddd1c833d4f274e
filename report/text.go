package report

import (
	"bufio"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/s7layout/types"
)

// Styles decorates the text table. The zero value renders plain text.
type Styles struct {
	Header lipgloss.Style
	Path   lipgloss.Style
	Offset lipgloss.Style
	// ShowAddress appends the S7 absolute address to addressable rows.
	ShowAddress bool
	styled      bool
}

// ColorStyles returns the terminal styles used when color is enabled.
func ColorStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		Path:   lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		Offset: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		styled: true,
	}
}

func (s Styles) render(st lipgloss.Style, text string) string {
	if !s.styled {
		return text
	}
	return st.Render(text)
}

// WriteText writes the offset table of each data block:
//
//	DB NAME: DB1
//	DB1.Field1 			0.0
func WriteText(w io.Writer, dbs []*types.DataBlock, styles Styles) error {
	bw := bufio.NewWriter(w)
	for _, db := range dbs {
		bw.WriteString(styles.render(styles.Header, "DB NAME: "+db.Name))
		bw.WriteByte('\n')
		Walk(db, func(e Entry) bool {
			bw.WriteString(styles.render(styles.Path, e.Path))
			bw.WriteString(" \t\t\t")
			bw.WriteString(styles.render(styles.Offset, e.Location()))
			if styles.ShowAddress && e.Address != "" {
				bw.WriteString(" \t")
				bw.WriteString(e.Address)
			}
			bw.WriteByte('\n')
			return true
		})
	}
	return bw.Flush()
}
