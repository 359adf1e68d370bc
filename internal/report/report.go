// Package report serializes run results to CSV/JSON artifacts and
// prints the console summary.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmaher/bmorganize/internal/dedupe"
	"github.com/dmaher/bmorganize/internal/domain"
)

// Artifact filenames, fixed by the tool's contract. Existing files are
// overwritten without prompting.
const (
	DeadFile       = "dead_bookmarks.csv"
	DuplicatesFile = "duplicate_bookmarks.csv"
	WorkingFile    = "working_bookmarks.csv"
	AnalysisFile   = "bookmark_analysis.json"
)

type Writer struct {
	OutDir string
}

func NewWriter(outDir string) *Writer {
	if outDir == "" {
		outDir = "."
	}
	return &Writer{OutDir: outDir}
}

// WriteAll writes the four artifacts for a run.
func (w *Writer) WriteAll(rep *domain.Report) error {
	byURL := indexResults(rep)

	if err := w.writeLinksCSV(DeadFile, rep.Bookmarks, byURL, domain.OutcomeDead, domain.OutcomeError); err != nil {
		return err
	}
	if err := w.writeLinksCSV(WorkingFile, rep.Bookmarks, byURL, domain.OutcomeWorking); err != nil {
		return err
	}
	if err := w.writeDuplicatesCSV(rep.Duplicates); err != nil {
		return err
	}
	return w.writeJSON(rep)
}

// indexResults maps normalized URL to its probe result.
func indexResults(rep *domain.Report) map[string]domain.Result {
	byURL := make(map[string]domain.Result, len(rep.Working)+len(rep.Dead)+len(rep.Errored))
	for _, list := range [][]domain.Result{rep.Working, rep.Dead, rep.Errored} {
		for _, r := range list {
			byURL[r.URL] = r
		}
	}
	return byURL
}

// writeLinksCSV writes one row per bookmark whose probe landed in one
// of the wanted outcomes, in document order.
func (w *Writer) writeLinksCSV(name string, bookmarks []domain.Bookmark, byURL map[string]domain.Result, want ...domain.Outcome) error {
	f, err := os.Create(filepath.Join(w.OutDir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"title", "url", "status_code", "outcome", "domain", "error"}); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	for _, b := range bookmarks {
		r, ok := byURL[dedupe.NormalizeURL(b.URL)]
		if !ok || !wanted(r.Outcome, want) {
			continue
		}
		status := ""
		if r.StatusCode != 0 {
			status = strconv.Itoa(r.StatusCode)
		}
		row := []string{b.Title, b.URL, status, string(r.Outcome), r.Domain, r.ErrText}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	return f.Close()
}

func wanted(o domain.Outcome, want []domain.Outcome) bool {
	for _, w := range want {
		if o == w {
			return true
		}
	}
	return false
}

func (w *Writer) writeDuplicatesCSV(groups []domain.DuplicateGroup) error {
	f, err := os.Create(filepath.Join(w.OutDir, DuplicatesFile))
	if err != nil {
		return fmt.Errorf("create %s: %w", DuplicatesFile, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"kind", "key", "count", "titles", "urls"}); err != nil {
		return fmt.Errorf("write %s: %w", DuplicatesFile, err)
	}

	for _, g := range groups {
		titles := make([]string, 0, len(g.Members))
		urls := make([]string, 0, len(g.Members))
		for _, m := range g.Members {
			titles = append(titles, m.Title)
			urls = append(urls, m.URL)
		}
		row := []string{
			string(g.Kind),
			g.Key,
			strconv.Itoa(len(g.Members)),
			strings.Join(titles, "; "),
			strings.Join(urls, "; "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", DuplicatesFile, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", DuplicatesFile, err)
	}
	return f.Close()
}

func (w *Writer) writeJSON(rep *domain.Report) error {
	f, err := os.Create(filepath.Join(w.OutDir, AnalysisFile))
	if err != nil {
		return fmt.Errorf("create %s: %w", AnalysisFile, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode %s: %w", AnalysisFile, err)
	}
	return f.Close()
}
