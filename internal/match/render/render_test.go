package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/louisbranch/rxlab/internal/match"
)

func TestRenderWrapsMatchesInMarks(t *testing.T) {
	t.Parallel()

	out := Render("aaa bb aa", match.MatchSet{
		{Index: 0, Length: 3, Text: "aaa"},
		{Index: 7, Length: 2, Text: "aa"},
	})
	want := "<mark>aaa</mark> bb <mark>aa</mark>"
	if out.HighlightedHTML != want {
		t.Fatalf("HighlightedHTML = %q, want %q", out.HighlightedHTML, want)
	}
	if out.Total != 2 || out.Hidden != 0 {
		t.Fatalf("Total/Hidden = %d/%d, want 2/0", out.Total, out.Hidden)
	}
}

func TestRenderNoMatchesReproducesEscapedText(t *testing.T) {
	t.Parallel()

	out := Render(`<b>&"raw"</b>`, match.MatchSet{})
	if strings.Contains(out.HighlightedHTML, "<b>") {
		t.Fatalf("unescaped markup leaked: %q", out.HighlightedHTML)
	}
	if out.HighlightedHTML != "&lt;b&gt;&amp;&#34;raw&#34;&lt;/b&gt;" {
		t.Fatalf("HighlightedHTML = %q", out.HighlightedHTML)
	}
	if out.GroupListingHTML != "" {
		t.Fatalf("GroupListingHTML = %q, want empty for no matches", out.GroupListingHTML)
	}
}

func TestRenderEscapesInsideAndOutsideMatches(t *testing.T) {
	t.Parallel()

	text := `x<a> & y<a>`
	out := Render(text, match.MatchSet{
		{Index: 1, Length: 3, Text: "<a>"},
		{Index: 8, Length: 3, Text: "<a>"},
	})
	stripped := strings.ReplaceAll(strings.ReplaceAll(out.HighlightedHTML, "<mark>", ""), "</mark>", "")
	for _, forbidden := range []string{"<a>", `"`, " & "} {
		if strings.Contains(stripped, forbidden) {
			t.Fatalf("unescaped %q outside markers: %q", forbidden, out.HighlightedHTML)
		}
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	t.Parallel()

	set := match.MatchSet{{Index: 0, Length: 1, Text: "a", Groups: []match.Group{{Value: "a", Present: true}}}}
	first := Render("abc", set)
	second := Render("abc", set)
	if first != second {
		t.Fatalf("repeated Render produced different output:\n%+v\n%+v", first, second)
	}
}

func TestRenderTruncatesBeyondCeiling(t *testing.T) {
	t.Parallel()

	total := MaxRenderedMatches + 7
	text := strings.Repeat("a", total)
	set := make(match.MatchSet, 0, total)
	for i := 0; i < total; i++ {
		set = append(set, match.Match{Index: i, Length: 1, Text: "a"})
	}

	out := Render(text, set)
	if out.Total != total {
		t.Fatalf("Total = %d, want %d", out.Total, total)
	}
	if out.Hidden != 7 {
		t.Fatalf("Hidden = %d, want 7", out.Hidden)
	}
	if got := strings.Count(out.HighlightedHTML, "<mark>"); got != MaxRenderedMatches {
		t.Fatalf("rendered marks = %d, want %d", got, MaxRenderedMatches)
	}
	marker := fmt.Sprintf("7 more matches not shown (%d total)", total)
	if !strings.Contains(out.HighlightedHTML, marker) {
		t.Fatalf("missing truncation marker %q in %q", marker, out.HighlightedHTML[len(out.HighlightedHTML)-120:])
	}
}

func TestGroupListingSkipsAbsentGroups(t *testing.T) {
	t.Parallel()

	out := Render("ab", match.MatchSet{
		{Index: 0, Length: 1, Text: "a", Groups: []match.Group{{Value: "a", Present: true}, {}}},
		{Index: 1, Length: 1, Text: "b", Groups: []match.Group{{}, {Value: "b", Present: true}}},
	})
	if !strings.Contains(out.GroupListingHTML, "Group 1: <code>a</code>") {
		t.Fatalf("missing participating group 1: %q", out.GroupListingHTML)
	}
	if !strings.Contains(out.GroupListingHTML, "Group 2: <code>b</code>") {
		t.Fatalf("missing participating group 2: %q", out.GroupListingHTML)
	}
	if strings.Contains(out.GroupListingHTML, "Group 2: <code></code>") {
		t.Fatalf("absent group rendered: %q", out.GroupListingHTML)
	}
}

func TestGroupListingEmptyStateWhenNothingParticipates(t *testing.T) {
	t.Parallel()

	out := Render("ab", match.MatchSet{{Index: 0, Length: 1, Text: "a"}})
	if !strings.Contains(out.GroupListingHTML, "empty-state") {
		t.Fatalf("expected explicit empty-state marker, got %q", out.GroupListingHTML)
	}
}
