package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"

	"github.com/dmaher/bmorganize/internal/domain"
)

// topDomains caps the dead-link domain table.
const topDomains = 5

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FAFD7"))
	deadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF005F"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D787"))
)

// PrintSummary writes the human-readable summary block.
func PrintSummary(out io.Writer, rep *domain.Report) {
	s := rep.Summary

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("BOOKMARK ANALYSIS SUMMARY"))
	fmt.Fprintf(out, "Total bookmarks processed: %d\n", s.TotalBookmarks)
	if s.SkippedEntries > 0 {
		fmt.Fprintf(out, "Skipped malformed entries: %d\n", s.SkippedEntries)
	}
	fmt.Fprintf(out, "Distinct URLs checked:     %d\n", s.DistinctURLs)
	fmt.Fprintf(out, "Working links:             %s\n", okStyle.Render(fmt.Sprintf("%d", s.Working)))
	fmt.Fprintf(out, "Dead links:                %s\n", deadStyle.Render(fmt.Sprintf("%d", s.Dead)))
	fmt.Fprintf(out, "Errored links:             %d\n", s.Errored)
	fmt.Fprintf(out, "Duplicate groups found:    %d\n", s.DuplicateGroups)

	if len(rep.DeadDomains) == 0 {
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("Top domains with dead links"))
	tbl := table.New("Domain", "Dead links").WithWriter(out)
	for i, dc := range rep.DeadDomains {
		if i >= topDomains {
			break
		}
		tbl.AddRow(dc.Domain, dc.Count)
	}
	tbl.Print()
}
