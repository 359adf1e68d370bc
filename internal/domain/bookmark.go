package domain

// Bookmark is a single entry from a browser export. Immutable once parsed.
type Bookmark struct {
	Title  string   `json:"title"`
	URL    string   `json:"url"`
	Folder []string `json:"folder,omitempty"`
	Domain string   `json:"domain"`
}

type GroupKind string

const (
	GroupKindURL   GroupKind = "duplicate_url"
	GroupKindTitle GroupKind = "similar_title"
)

// DuplicateGroup collects bookmarks considered the same or highly similar.
// URL groups are exclusive (a bookmark is in at most one); title groups
// are advisory and may overlap with URL groups.
type DuplicateGroup struct {
	Kind    GroupKind  `json:"kind"`
	Key     string     `json:"key"`
	Members []Bookmark `json:"members"`
}
