// Package domain defines the MCP tool schemas and handlers for the
// regex tester.
package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/rxlab/internal/match"
	"github.com/louisbranch/rxlab/internal/match/snippet"
	"github.com/louisbranch/rxlab/internal/tester"
)

// RegexTestInput represents the MCP tool input for a match run.
type RegexTestInput struct {
	Pattern    string `json:"pattern" jsonschema:"regex pattern"`
	Flags      string `json:"flags" jsonschema:"flag characters, e.g. gi"`
	TestString string `json:"test_string" jsonschema:"subject text to match against"`
	Engine     string `json:"engine" jsonschema:"engine identifier (go or lua)"`
}

// GroupRecord is one capture group within a match record.
type GroupRecord struct {
	Value   string `json:"value"`
	Present bool   `json:"present"`
}

// MatchRecord is one match with byte offsets into the test string.
type MatchRecord struct {
	Index  int           `json:"index"`
	Length int           `json:"length"`
	Text   string        `json:"text"`
	Groups []GroupRecord `json:"groups,omitempty"`
}

// RegexTestResult represents the MCP tool output for a match run.
type RegexTestResult struct {
	Engine   string        `json:"engine" jsonschema:"engine that ran the pattern"`
	Total    int           `json:"total" jsonschema:"number of matches"`
	Matches  []MatchRecord `json:"matches" jsonschema:"ordered match records"`
	Warnings []string      `json:"warnings,omitempty" jsonschema:"advisory diagnostics"`
}

// RegexSnippetInput represents the MCP tool input for snippet export.
type RegexSnippetInput struct {
	Engine string `json:"engine" jsonschema:"engine identifier (go or lua)"`
	Kind   string `json:"kind" jsonschema:"snippet kind (literal or code)"`
}

// RegexSnippetResult represents the MCP tool output for snippet export.
type RegexSnippetResult struct {
	Snippet string `json:"snippet" jsonschema:"copy-ready snippet for the session's pattern"`
}

// RegexTestTool defines the MCP tool schema for running a pattern.
func RegexTestTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "regex_test",
		Description: "Runs a regex pattern against a test string and returns the matches",
	}
}

// RegexSnippetTool defines the MCP tool schema for snippet export.
func RegexSnippetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "regex_snippet",
		Description: "Exports the current session's pattern as a literal or code snippet",
	}
}

// RegexTestHandler executes a match run against the shared session.
func RegexTestHandler(session *tester.Session) mcp.ToolHandlerFor[RegexTestInput, RegexTestResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RegexTestInput) (*mcp.CallToolResult, RegexTestResult, error) {
		engine, ok := match.ParseEngineID(input.Engine)
		if !ok {
			return nil, RegexTestResult{}, fmt.Errorf("unknown engine %q", input.Engine)
		}

		result, err := session.Run(ctx, tester.RunInput{
			Pattern:    input.Pattern,
			Flags:      input.Flags,
			TestString: input.TestString,
			Engine:     engine,
		})
		if err != nil {
			return nil, RegexTestResult{}, fmt.Errorf("regex test failed: %w", err)
		}

		out := RegexTestResult{
			Engine:   string(result.Engine),
			Total:    len(result.Matches),
			Matches:  make([]MatchRecord, 0, len(result.Matches)),
			Warnings: result.Warnings,
		}
		for _, m := range result.Matches {
			record := MatchRecord{Index: m.Index, Length: m.Length, Text: m.Text}
			for _, group := range m.Groups {
				record.Groups = append(record.Groups, GroupRecord{Value: group.Value, Present: group.Present})
			}
			out.Matches = append(out.Matches, record)
		}
		return nil, out, nil
	}
}

// RegexSnippetHandler exports the session's current pattern.
func RegexSnippetHandler(session *tester.Session) mcp.ToolHandlerFor[RegexSnippetInput, RegexSnippetResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RegexSnippetInput) (*mcp.CallToolResult, RegexSnippetResult, error) {
		engine, ok := match.ParseEngineID(input.Engine)
		if !ok {
			return nil, RegexSnippetResult{}, fmt.Errorf("unknown engine %q", input.Engine)
		}
		kind, ok := snippet.ParseKind(input.Kind)
		if !ok {
			return nil, RegexSnippetResult{}, fmt.Errorf("unknown snippet kind %q", input.Kind)
		}

		text, err := session.Snippet(engine, kind)
		if err != nil {
			return nil, RegexSnippetResult{}, fmt.Errorf("snippet export failed: %w", err)
		}
		return nil, RegexSnippetResult{Snippet: text}, nil
	}
}
