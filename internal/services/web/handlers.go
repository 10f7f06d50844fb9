package web

import (
	stderrors "errors"
	"log"
	"net/http"

	"github.com/louisbranch/rxlab/internal/match"
	"github.com/louisbranch/rxlab/internal/match/render"
	"github.com/louisbranch/rxlab/internal/match/snippet"
	"github.com/louisbranch/rxlab/internal/platform/errors"
	"github.com/louisbranch/rxlab/internal/platform/errors/i18n"
	"github.com/louisbranch/rxlab/internal/tester"
)

type handlers struct {
	session *tester.Session
	logger  *log.Logger
}

func (h handlers) index(w http.ResponseWriter, r *http.Request) {
	state := h.session.State()

	var view resultsView
	if state.Pattern != "" {
		result, err := h.session.Run(r.Context(), tester.RunInput{
			Pattern:    state.Pattern,
			Flags:      state.Flags,
			TestString: state.TestString,
			Engine:     state.Engine,
		})
		view = h.viewFor(r, state.TestString, result, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageComponent(state, view).Render(r.Context(), w); err != nil {
		h.logger.Printf("render page: %v", err)
	}
}

func (h handlers) run(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	engine, ok := match.ParseEngineID(r.PostFormValue("engine"))
	if !ok {
		engine = match.EngineGo
	}
	testString := r.PostFormValue("test_string")
	result, err := h.session.Run(r.Context(), tester.RunInput{
		Pattern:    r.PostFormValue("pattern"),
		Flags:      r.PostFormValue("flags"),
		TestString: testString,
		Engine:     engine,
	})
	view := h.viewFor(r, testString, result, err)
	if view.Stale {
		// A newer run already owns the results panel; skip the swap.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if view.Status != 0 {
		w.WriteHeader(view.Status)
	}
	if err := resultsFragment(view).Render(r.Context(), w); err != nil {
		h.logger.Printf("render results: %v", err)
	}
}

func (h handlers) snippet(w http.ResponseWriter, r *http.Request) {
	engine, ok := match.ParseEngineID(r.URL.Query().Get("engine"))
	if !ok {
		http.Error(w, "unknown engine", http.StatusUnprocessableEntity)
		return
	}
	kind, ok := snippet.ParseKind(r.URL.Query().Get("kind"))
	if !ok {
		http.Error(w, "unknown snippet kind", http.StatusUnprocessableEntity)
		return
	}

	text, err := h.session.Snippet(engine, kind)
	if err != nil {
		h.writeErrorText(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text + "\n"))
}

// viewFor folds a run outcome into the fragment view: successful runs
// carry the result, stale runs are marked so the panel is left alone,
// loading surfaces the retry state, and everything else becomes a
// localized error banner over the unhighlighted subject text.
func (h handlers) viewFor(r *http.Request, testString string, result tester.RunResult, err error) resultsView {
	if err == nil {
		if result.Stale {
			return resultsView{Stale: true}
		}
		return resultsView{Result: result, HasRun: true}
	}

	// Failed runs still show the subject, escaped and unmarked.
	subjectHTML := render.Render(testString, nil).HighlightedHTML

	var domainErr *errors.Error
	if !stderrors.As(err, &domainErr) {
		h.logger.Printf("run failed: %v", err)
		return resultsView{
			ErrorMsg:    "something went wrong",
			SubjectHTML: subjectHTML,
			Status:      http.StatusInternalServerError,
		}
	}

	if domainErr.Code == errors.CodeEngineLoading {
		return resultsView{Loading: true, Status: http.StatusAccepted}
	}

	catalog := i18n.Match(r.Header.Get("Accept-Language"))
	metadata := domainErr.Metadata
	if domainErr.Code == errors.CodePatternCompile {
		// The raw engine diagnostic rides in the message.
		if metadata == nil {
			metadata = map[string]string{}
		}
		metadata["detail"] = domainErr.Message
	}
	return resultsView{
		ErrorMsg:    catalog.Format(string(domainErr.Code), metadata),
		SubjectHTML: subjectHTML,
		Status:      domainErr.Code.HTTPStatus(),
	}
}

func (h handlers) writeErrorText(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *errors.Error
	if !stderrors.As(err, &domainErr) {
		h.logger.Printf("request failed: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	catalog := i18n.Match(r.Header.Get("Accept-Language"))
	http.Error(w, catalog.Format(string(domainErr.Code), domainErr.Metadata), domainErr.Code.HTTPStatus())
}
