package scrape

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

// URLColumn is appended to the scraped headers and holds each row's link.
const URLColumn = "url"

// containerClass marks the div that wraps the mountain table.
const containerClass = "base_txt"

// Parse errors.
var (
	ErrNoContainer = errors.New("table container not found")
	ErrNoRows      = errors.New("table has no data rows")
)

// ParseTable extracts the mountain table from an HTML page.
//
// The first tr inside the container supplies the headers (its th cells) and
// a trailing "url" column. In every later row the first td contributes its
// link text and the link's href; remaining tds contribute their text. Rows
// without td cells are skipped, short rows are padded with "" and extra
// cells are dropped, so every row carries every column.
func ParseTable(r io.Reader) (*types.Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	container := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "div") && hasClass(n, containerClass)
	})
	if container == nil {
		return nil, ErrNoContainer
	}

	trs := findAll(container, func(n *html.Node) bool { return isElement(n, "tr") })
	if len(trs) < 2 {
		return nil, ErrNoRows
	}

	var columns []string
	for _, th := range findAll(trs[0], func(n *html.Node) bool { return isElement(n, "th") }) {
		columns = append(columns, text(th))
	}
	columns = append(columns, URLColumn)

	rows := make([]types.Row, 0, len(trs)-1)
	for _, tr := range trs[1:] {
		tds := findAll(tr, func(n *html.Node) bool { return isElement(n, "td") })
		if len(tds) == 0 {
			continue
		}

		cells := make([]string, 0, len(tds))
		href := ""
		for i, td := range tds {
			if i == 0 {
				if a := findFirst(td, func(n *html.Node) bool { return isElement(n, "a") }); a != nil {
					cells = append(cells, text(a))
					href = attr(a, "href")
					continue
				}
			}
			cells = append(cells, text(td))
		}

		row := make(types.Row, len(columns))
		for i, col := range columns[:len(columns)-1] {
			if i < len(cells) {
				row[col] = cells[i]
			} else {
				row[col] = ""
			}
		}
		row[URLColumn] = href
		rows = append(rows, row)
	}

	return types.NewTable(columns, rows), nil
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findFirst returns the first descendant of n (depth-first, document order)
// matching pred, or nil.
func findFirst(n *html.Node, pred func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if pred(c) {
			return c
		}
		if found := findFirst(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every descendant of n matching pred in document order.
func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if pred(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// text returns the concatenated text content of n, trimmed.
func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		if p.Type == html.TextNode {
			b.WriteString(p.Data)
			return
		}
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
