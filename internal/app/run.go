// Package app orchestrates a single analysis run. All state lives in
// memory for the duration of the run; nothing persists across runs.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/dmaher/bmorganize/internal/check"
	"github.com/dmaher/bmorganize/internal/config"
	"github.com/dmaher/bmorganize/internal/dedupe"
	"github.com/dmaher/bmorganize/internal/domain"
	"github.com/dmaher/bmorganize/internal/extract"
	"github.com/dmaher/bmorganize/internal/limiter"
	"github.com/dmaher/bmorganize/internal/report"
)

type Pipeline struct {
	cfg     config.Config
	checker *check.Checker
	limiter *limiter.PerHost
	writer  *report.Writer
	log     *slog.Logger
}

func (p *Pipeline) Run(ctx context.Context, inputPath string, stdout io.Writer) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open bookmarks file: %w", err)
	}
	records, stats, err := extract.Bookmarks(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("parse bookmarks: %w", err)
	}

	p.log.Info("parsed bookmarks", "file", inputPath, "bookmarks", len(records), "skipped", stats.Skipped)

	groups := dedupe.Groups(records, p.cfg.TitleSimilarity)
	p.log.Info("duplicate detection done", "groups", len(groups))

	urls := distinctURLs(records)

	var results []domain.Result
	if !p.cfg.SkipProbe {
		results = p.probe(ctx, urls)
	}

	rep := assemble(records, stats, groups, urls, results)

	if err := p.writer.WriteAll(rep); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}
	p.log.Info("reports written", "dir", p.writer.OutDir)

	report.PrintSummary(stdout, rep)
	return nil
}

// distinctURLs returns the normalized URLs in first-seen order. Each is
// probed exactly once no matter how many bookmarks share it.
func distinctURLs(records []domain.Bookmark) []string {
	seen := make(map[string]struct{}, len(records))
	var out []string
	for _, b := range records {
		k := dedupe.NormalizeURL(b.URL)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// probe runs the bounded worker pool over the distinct URLs. Results
// are collected over a channel; output order is restored later by
// sorting, so completion order never leaks into the reports.
func (p *Pipeline) probe(ctx context.Context, urls []string) []domain.Result {
	p.log.Info("probing links", "urls", len(urls), "concurrency", p.cfg.Concurrency)

	jobs := make(chan string)
	results := make(chan domain.Result, p.cfg.Concurrency)

	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for u := range jobs {
			_ = p.limiter.Take(ctx, u)
			results <- p.checker.Check(ctx, u)
		}
	}

	wg.Add(p.cfg.Concurrency)
	for i := 0; i < p.cfg.Concurrency; i++ {
		go worker()
	}

	go func() {
		defer close(jobs)
		for _, u := range urls {
			select {
			case jobs <- u:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	all := make([]domain.Result, 0, len(urls))
	for r := range results {
		all = append(all, r)
		if len(all)%p.cfg.ProgressEvery == 0 {
			p.log.Info("progress", "checked", len(all), "total", len(urls))
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].URL < all[j].URL })
	return all
}

// assemble builds the full report from the run's intermediate state.
func assemble(records []domain.Bookmark, stats extract.Stats, groups []domain.DuplicateGroup, urls []string, results []domain.Result) *domain.Report {
	rep := &domain.Report{
		Bookmarks:  records,
		Duplicates: groups,
	}

	for _, r := range results {
		switch r.Outcome {
		case domain.OutcomeWorking:
			rep.Working = append(rep.Working, r)
		case domain.OutcomeDead:
			rep.Dead = append(rep.Dead, r)
		default:
			rep.Errored = append(rep.Errored, r)
		}
	}

	rep.DeadDomains = deadDomains(rep.Dead)

	rep.Summary = domain.Summary{
		TotalBookmarks:  len(records),
		SkippedEntries:  stats.Skipped,
		DistinctURLs:    len(urls),
		Working:         len(rep.Working),
		Dead:            len(rep.Dead),
		Errored:         len(rep.Errored),
		DuplicateGroups: len(groups),
	}

	return rep
}

// deadDomains tallies dead links per domain, sorted by count descending
// with ties broken alphabetically.
func deadDomains(dead []domain.Result) []domain.DomainCount {
	counts := make(map[string]int)
	for _, r := range dead {
		d := r.Domain
		if d == "" {
			d = "unknown"
		}
		counts[d]++
	}

	out := make([]domain.DomainCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, domain.DomainCount{Domain: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Domain < out[j].Domain
	})
	return out
}
