package domain

import "time"

type Outcome string

const (
	OutcomeWorking Outcome = "working"
	OutcomeDead    Outcome = "dead"
	OutcomeError   Outcome = "error"
)

// Result is the probe outcome for one distinct normalized URL.
type Result struct {
	URL        string        `json:"url"`
	StatusCode int           `json:"status_code,omitempty"`
	Outcome    Outcome       `json:"outcome"`
	Domain     string        `json:"domain"`
	Err        error         `json:"-"`
	ErrText    string        `json:"error,omitempty"`
	Elapsed    time.Duration `json:"-"`
	ElapsedMS  int64         `json:"elapsed_ms"`
}

func (r Result) IsDead() bool { return r.Outcome == OutcomeDead }

// Summary holds the run-level counts reported to the console and JSON.
type Summary struct {
	TotalBookmarks  int `json:"total_bookmarks"`
	SkippedEntries  int `json:"skipped_entries"`
	DistinctURLs    int `json:"distinct_urls"`
	Working         int `json:"working"`
	Dead            int `json:"dead"`
	Errored         int `json:"errored"`
	DuplicateGroups int `json:"duplicate_groups"`
}

// DomainCount is a per-domain dead-link tally, used for the summary table.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// Report is the full in-memory result set for one run.
type Report struct {
	Summary     Summary          `json:"summary"`
	Bookmarks   []Bookmark       `json:"bookmarks"`
	Duplicates  []DuplicateGroup `json:"duplicates"`
	Working     []Result         `json:"working_links"`
	Dead        []Result         `json:"dead_links"`
	Errored     []Result         `json:"errored_links"`
	DeadDomains []DomainCount    `json:"dead_domains"`
}
