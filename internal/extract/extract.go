package extract

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/dmaher/bmorganize/internal/domain"
)

// ErrNoBookmarks is returned when the document parses but contains no
// anchor elements at all, i.e. it is not a bookmark export.
var ErrNoBookmarks = errors.New("no bookmark anchors found")

// Stats counts what the walk saw, including entries that were skipped
// rather than turned into records.
type Stats struct {
	Anchors int
	Skipped int
}

// Bookmarks parses a browser bookmark export (NETSCAPE-Bookmark-file
// markup: folders as <DT><H3> headings over nested <DL> lists, entries
// as <A href>) and returns the records in document order.
//
// Malformed entries (empty href, empty title, non-http(s) scheme) are
// skipped and counted, never fatal.
func Bookmarks(r io.Reader) ([]domain.Bookmark, Stats, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("parse html: %w", err)
	}

	var (
		out   []domain.Bookmark
		stats Stats
	)

	var walk func(n *html.Node, folder []string)
	walk = func(n *html.Node, folder []string) {
		// A folder heading and its list arrive as sibling children of
		// the same (unclosed) <DT>, so track the pending heading while
		// iterating this node's children.
		pending := ""

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}

			switch c.Data {
			case "h3":
				pending = strings.TrimSpace(text(c))
			case "dl":
				sub := folder
				if pending != "" {
					sub = append(append([]string{}, folder...), pending)
				}
				walk(c, sub)
			case "a":
				stats.Anchors++
				if b, ok := record(c, folder); ok {
					out = append(out, b)
				} else {
					stats.Skipped++
				}
			default:
				walk(c, folder)
			}
		}
	}
	walk(doc, nil)

	if stats.Anchors == 0 {
		return nil, stats, ErrNoBookmarks
	}

	return out, stats, nil
}

// record builds a Bookmark from an anchor node, reporting whether the
// entry was usable.
func record(n *html.Node, folder []string) (domain.Bookmark, bool) {
	href := ""
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, "href") {
			href = strings.TrimSpace(a.Val)
			break
		}
	}
	if href == "" {
		return domain.Bookmark{}, false
	}

	u, err := url.Parse(href)
	if err != nil {
		return domain.Bookmark{}, false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return domain.Bookmark{}, false
	}

	title := strings.TrimSpace(text(n))
	if title == "" {
		return domain.Bookmark{}, false
	}

	var path []string
	if len(folder) > 0 {
		path = append(path, folder...)
	}

	return domain.Bookmark{
		Title:  title,
		URL:    href,
		Folder: path,
		Domain: strings.ToLower(u.Hostname()),
	}, true
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
