package web

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/rxlab/internal/match"
	"github.com/louisbranch/rxlab/internal/tester"
	"github.com/louisbranch/rxlab/internal/tester/storage"
)

// resultsView is everything the results fragment needs to render one
// run outcome.
type resultsView struct {
	Result tester.RunResult
	HasRun bool
	// SubjectHTML is the escaped, unmarked subject text shown under an
	// error banner so failed runs never blank the text panel.
	SubjectHTML string
	ErrorMsg    string
	Loading     bool
	// Stale marks a superseded run; its fragment must not be rendered.
	Stale  bool
	Status int
}

func pageComponent(state storage.SessionState, results resultsView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>rxlab</title>
<link rel="stylesheet" href="/static/styles.css">
<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>
</head>
<body>
<main class="tester">
<h1>rxlab</h1>
`); err != nil {
			return err
		}
		if err := formComponent(state).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<nav class="snippets">
<a href="/snippet?engine=go&amp;kind=literal" target="_blank">Pattern literal</a>
<a href="/snippet?engine=go&amp;kind=code" target="_blank">Go code</a>
<a href="/snippet?engine=lua&amp;kind=code" target="_blank">Lua code</a>
</nav>
`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<section id="results" class="results">`); err != nil {
			return err
		}
		if err := resultsFragment(results).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>
</main>
</body>
</html>
`)
		return err
	})
}

func formComponent(state storage.SessionState) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<form id="tester-form" hx-post="/run" hx-target="#results" hx-trigger="submit, input delay:200ms from:input, input delay:200ms from:textarea, change from:select">` + "\n")
		b.WriteString(`<label for="pattern">Pattern</label>` + "\n")
		b.WriteString(`<input id="pattern" name="pattern" value="` + templ.EscapeString(state.Pattern) + `" autocomplete="off" spellcheck="false">` + "\n")
		b.WriteString(`<label for="flags">Flags</label>` + "\n")
		b.WriteString(`<input id="flags" name="flags" value="` + templ.EscapeString(state.Flags) + `" autocomplete="off" spellcheck="false">` + "\n")
		b.WriteString(`<label for="engine">Engine</label>` + "\n")
		b.WriteString(`<select id="engine" name="engine">` + "\n")
		for _, engine := range []match.EngineID{match.EngineGo, match.EngineLua} {
			selected := ""
			if engine == state.Engine {
				selected = " selected"
			}
			fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`+"\n", engine, selected, engineOptionLabel(engine))
		}
		b.WriteString(`</select>` + "\n")
		b.WriteString(`<label for="test_string">Test string</label>` + "\n")
		b.WriteString(`<textarea id="test_string" name="test_string" rows="8">` + templ.EscapeString(state.TestString) + `</textarea>` + "\n")
		b.WriteString(`<button type="submit">Run</button>` + "\n")
		b.WriteString(`</form>` + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func engineOptionLabel(engine match.EngineID) string {
	if engine == match.EngineLua {
		return "Lua patterns"
	}
	return "Go regexp"
}

// resultsFragment renders the counter, warnings, and the two result
// panels. It is the HTMX swap target for every run.
func resultsFragment(view resultsView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder

		switch {
		case view.Loading:
			b.WriteString(`<div class="loading" hx-post="/run" hx-include="#tester-form" hx-target="#results" hx-trigger="load delay:300ms">Loading Lua engine&hellip;</div>` + "\n")
		case view.ErrorMsg != "":
			b.WriteString(`<div class="error">` + templ.EscapeString(view.ErrorMsg) + `</div>` + "\n")
			b.WriteString(`<pre class="highlighted">` + view.SubjectHTML + `</pre>` + "\n")
		case !view.HasRun:
			b.WriteString(`<p class="empty-state">Enter a pattern and test string to see matches.</p>` + "\n")
		default:
			for _, warning := range view.Result.Warnings {
				b.WriteString(`<div class="warning">` + templ.EscapeString(warning) + `</div>` + "\n")
			}
			fmt.Fprintf(&b, `<p class="counter">%s</p>`+"\n", matchCounter(view.Result.Output.Total))
			b.WriteString(`<pre class="highlighted">` + view.Result.Output.HighlightedHTML + `</pre>` + "\n")
			if view.Result.Output.GroupListingHTML != "" {
				b.WriteString(`<div class="groups">` + view.Result.Output.GroupListingHTML + `</div>` + "\n")
			}
		}

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func matchCounter(total int) string {
	if total == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", total)
}
