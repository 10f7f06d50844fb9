// Package render turns a normalized match set plus its subject text into
// markup for the highlighted-text panel and the capture-group panel.
// Rendering work is bounded by a fixed match ceiling so a pathological
// pattern cannot stall the page; matching itself is not bounded here.
package render

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/rxlab/internal/match"
)

// MaxRenderedMatches caps how many matches the highlighter and the group
// listing render. Matches beyond the cap are counted, not drawn.
const MaxRenderedMatches = 1000

// Output is the rendered form of one match run.
type Output struct {
	// HighlightedHTML is the subject text, escaped, with each rendered
	// match wrapped in a <mark> span and a trailing truncation marker
	// when matches were hidden.
	HighlightedHTML string
	// GroupListingHTML lists participating capture groups per rendered
	// match, or an explicit empty-state marker when no rendered match
	// captured anything. Empty when there are no matches at all.
	GroupListingHTML string
	// Total is the true match count before truncation.
	Total int
	// Hidden is how many matches the ceiling suppressed.
	Hidden int
}

// Render produces the two panels for text and matches. Identical inputs
// produce byte-identical output.
func Render(text string, matches match.MatchSet) Output {
	out := Output{Total: len(matches)}

	rendered := matches
	if len(rendered) > MaxRenderedMatches {
		rendered = rendered[:MaxRenderedMatches]
		out.Hidden = out.Total - MaxRenderedMatches
	}

	out.HighlightedHTML = highlight(text, rendered, out.Hidden, out.Total)
	out.GroupListingHTML = groupListing(rendered)
	return out
}

func highlight(text string, rendered match.MatchSet, hidden, total int) string {
	var b strings.Builder
	cursor := 0
	for _, m := range rendered {
		if m.Index < cursor || m.End() > len(text) {
			continue
		}
		b.WriteString(templ.EscapeString(text[cursor:m.Index]))
		b.WriteString(`<mark>`)
		b.WriteString(templ.EscapeString(text[m.Index:m.End()]))
		b.WriteString(`</mark>`)
		cursor = m.End()
	}
	b.WriteString(templ.EscapeString(text[cursor:]))

	if hidden > 0 {
		fmt.Fprintf(&b, `<span class="truncation">&hellip; %d more matches not shown (%d total)</span>`, hidden, total)
	}
	return b.String()
}

func groupListing(rendered match.MatchSet) string {
	if len(rendered) == 0 {
		return ""
	}

	var b strings.Builder
	listed := false
	for i, m := range rendered {
		var groups strings.Builder
		for n, g := range m.Groups {
			if !g.Present {
				continue
			}
			fmt.Fprintf(&groups, `<li>Group %d: <code>%s</code></li>`, n+1, templ.EscapeString(g.Value))
		}
		if groups.Len() == 0 {
			continue
		}
		listed = true
		fmt.Fprintf(&b, `<div class="match-groups"><h4>Match %d: <code>%s</code></h4><ul>%s</ul></div>`,
			i+1, templ.EscapeString(m.Text), groups.String())
	}

	if !listed {
		return `<p class="empty-state">No capture groups participated in any match.</p>`
	}
	return b.String()
}
