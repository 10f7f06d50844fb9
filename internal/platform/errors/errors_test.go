package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorMatchesByCode(t *testing.T) {
	t.Parallel()

	err := New(CodePatternCompile, "compile failed")
	if !stderrors.Is(err, &Error{Code: CodePatternCompile}) {
		t.Fatalf("errors.Is did not match by code")
	}
	if stderrors.Is(err, &Error{Code: CodeEngineLoading}) {
		t.Fatalf("errors.Is matched a different code")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("disk full")
	err := Wrap(CodeStorageUnavailable, "save snapshot", cause)
	if !stderrors.Is(err, cause) {
		t.Fatalf("wrapped cause lost from chain")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	t.Parallel()

	cases := map[Code]int{
		CodePatternCompile:     http.StatusUnprocessableEntity,
		CodeEngineLoading:      http.StatusAccepted,
		CodeNotFound:           http.StatusNotFound,
		CodeEngineBootstrap:    http.StatusInternalServerError,
		CodeStorageUnavailable: http.StatusInternalServerError,
		CodeUnknown:            http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := code.HTTPStatus(); got != want {
			t.Fatalf("HTTPStatus(%s) = %d, want %d", code, got, want)
		}
	}
}
