package domain

import (
	"context"
	"testing"

	"github.com/louisbranch/rxlab/internal/match/native"
	"github.com/louisbranch/rxlab/internal/tester"
)

func newTestSession() *tester.Session {
	return tester.NewSession(nil, nil, native.New())
}

func TestRegexTestHandlerReturnsMatches(t *testing.T) {
	t.Parallel()

	handler := RegexTestHandler(newTestSession())
	_, result, err := handler(context.Background(), nil, RegexTestInput{
		Pattern:    `(\d+)-(\d+)`,
		Flags:      "g",
		TestString: "12-34 and 56-78",
		Engine:     "go",
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("Total = %d, want 2", result.Total)
	}
	first := result.Matches[0]
	if first.Index != 0 || first.Text != "12-34" {
		t.Fatalf("first match = %+v, want index 0 text 12-34", first)
	}
	if len(first.Groups) != 2 || first.Groups[0].Value != "12" || !first.Groups[1].Present {
		t.Fatalf("first groups = %+v, want 12 and 34 present", first.Groups)
	}
}

func TestRegexTestHandlerRejectsUnknownEngine(t *testing.T) {
	t.Parallel()

	handler := RegexTestHandler(newTestSession())
	_, _, err := handler(context.Background(), nil, RegexTestInput{Pattern: "a", Engine: "perl"})
	if err == nil {
		t.Fatal("handler error = nil, want unknown engine")
	}
}

func TestRegexTestHandlerSurfacesCompileFailure(t *testing.T) {
	t.Parallel()

	handler := RegexTestHandler(newTestSession())
	_, _, err := handler(context.Background(), nil, RegexTestInput{Pattern: "a(", Engine: "go"})
	if err == nil {
		t.Fatal("handler error = nil, want compile failure")
	}
}

func TestRegexSnippetHandlerExportsSessionPattern(t *testing.T) {
	t.Parallel()

	session := newTestSession()
	testHandler := RegexTestHandler(session)
	if _, _, err := testHandler(context.Background(), nil, RegexTestInput{
		Pattern: `\w+`, Flags: "g", TestString: "hi", Engine: "go",
	}); err != nil {
		t.Fatalf("seed run error = %v", err)
	}

	snippetHandler := RegexSnippetHandler(session)
	_, result, err := snippetHandler(context.Background(), nil, RegexSnippetInput{Engine: "go", Kind: "literal"})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result.Snippet != `/\w+/g` {
		t.Fatalf("Snippet = %q, want %q", result.Snippet, `/\w+/g`)
	}
}

func TestRegexSnippetHandlerRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	handler := RegexSnippetHandler(newTestSession())
	_, _, err := handler(context.Background(), nil, RegexSnippetInput{Engine: "go", Kind: "yaml"})
	if err == nil {
		t.Fatal("handler error = nil, want unknown kind")
	}
}
