package evaluation_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	uierrors "github.com/uniajc/educadigital/internal/app/features/errors"
	"github.com/uniajc/educadigital/internal/app/features/evaluation"
	catalogstore "github.com/uniajc/educadigital/internal/app/store/catalog"
	"github.com/uniajc/educadigital/internal/app/system/evalsessions"
	"github.com/uniajc/educadigital/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*evaluation.Handler, *evalsessions.Registry) {
	t.Helper()
	testutil.InitSessions(t)

	subs := testutil.NewSubmissionStore(t)
	ctx := context.Background()
	if err := subs.Append(ctx, testutil.QuizResource("REC-QUIZ", 70)); err != nil {
		t.Fatal(err)
	}
	if err := subs.Append(ctx, testutil.SampleResource("REC-PLAIN", "Sin evaluación")); err != nil {
		t.Fatal(err)
	}

	seed := catalogstore.NewSeedSource("", "", zap.NewNop())
	store := catalogstore.New(subs, seed, zap.NewNop())
	attempts := evalsessions.New(time.Hour, zap.NewNop())
	errLog := uierrors.NewErrorLogger(zap.NewNop())
	return evaluation.NewHandler(store, attempts, errLog, zap.NewNop()), attempts
}

func postForm(path string, form url.Values, from *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if from != nil {
		testutil.CopyCookies(req, from)
	}
	return req
}

func startAttempt(t *testing.T, h *evaluation.Handler, resourceID string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := postForm("/evaluacion/iniciar", url.Values{"recurso": {resourceID}}, nil)
	testutil.ServeQuiet(h.Start, rec, req)
	return rec
}

func TestStart_RegistersAttempt(t *testing.T) {
	handler, attempts := newTestHandler(t)

	rec := startAttempt(t, handler, "REC-QUIZ")

	if attempts.Len() != 1 {
		t.Errorf("registered attempts: got %d, want 1", attempts.Len())
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie binding the attempt")
	}
}

func TestStart_NoEvaluation(t *testing.T) {
	handler, attempts := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := postForm("/evaluacion/iniciar", url.Values{"recurso": {"REC-PLAIN"}}, nil)
	testutil.ServeQuiet(handler.Start, rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if attempts.Len() != 0 {
		t.Errorf("registered attempts: got %d, want 0", attempts.Len())
	}
}

func TestStart_UnknownResource(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := postForm("/evaluacion/iniciar", url.Values{"recurso": {"REC-NOPE"}}, nil)
	testutil.ServeQuiet(handler.Start, rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSubmit_IncompleteKeepsAttempt(t *testing.T) {
	handler, attempts := newTestHandler(t)
	started := startAttempt(t, handler, "REC-QUIZ")

	// Answer only the first question.
	rec := httptest.NewRecorder()
	req := postForm("/evaluacion/respuesta", url.Values{
		"pregunta": {"0"},
		"opcion":   {"0"},
	}, started)
	testutil.ServeQuiet(handler.Answer, rec, req)

	rec = httptest.NewRecorder()
	req = postForm("/evaluacion/enviar", nil, started)
	testutil.ServeQuiet(handler.Submit, rec, req)

	if attempts.Len() != 1 {
		t.Errorf("attempt should survive an incomplete submit, got %d live", attempts.Len())
	}
}

func TestSubmit_PassDropsAttempt(t *testing.T) {
	handler, attempts := newTestHandler(t)
	started := startAttempt(t, handler, "REC-QUIZ")

	// The fixture's answer key is option 0 throughout.
	for i := 0; i < 4; i++ {
		rec := httptest.NewRecorder()
		req := postForm("/evaluacion/respuesta", url.Values{
			"pregunta": {fmt.Sprint(i)},
			"opcion":   {"0"},
		}, started)
		testutil.ServeQuiet(handler.Answer, rec, req)
	}

	rec := httptest.NewRecorder()
	req := postForm("/evaluacion/enviar", nil, started)
	testutil.ServeQuiet(handler.Submit, rec, req)

	if attempts.Len() != 0 {
		t.Errorf("passed attempt should be dropped, got %d live", attempts.Len())
	}
}

func TestSubmit_FailKeepsAttemptForRetry(t *testing.T) {
	handler, attempts := newTestHandler(t)
	started := startAttempt(t, handler, "REC-QUIZ")

	for i := 0; i < 4; i++ {
		rec := httptest.NewRecorder()
		req := postForm("/evaluacion/respuesta", url.Values{
			"pregunta": {fmt.Sprint(i)},
			"opcion":   {"1"},
		}, started)
		testutil.ServeQuiet(handler.Answer, rec, req)
	}

	rec := httptest.NewRecorder()
	req := postForm("/evaluacion/enviar", nil, started)
	testutil.ServeQuiet(handler.Submit, rec, req)

	if attempts.Len() != 1 {
		t.Errorf("failed attempt should stay live for a retry, got %d", attempts.Len())
	}
}

func TestRetry_StartsFreshAttempt(t *testing.T) {
	handler, attempts := newTestHandler(t)
	started := startAttempt(t, handler, "REC-QUIZ")

	rec := httptest.NewRecorder()
	req := postForm("/evaluacion/reintentar", nil, started)
	testutil.ServeQuiet(handler.Retry, rec, req)

	if attempts.Len() != 1 {
		t.Errorf("retry should leave exactly one live attempt, got %d", attempts.Len())
	}
}

func TestDeliver_ActivityHandIn(t *testing.T) {
	handler, attempts := newTestHandler(t)
	// REC-002 from the built-in seed is an activity.
	started := startAttempt(t, handler, "REC-002")

	// Empty description is rejected and the attempt stays open.
	rec := httptest.NewRecorder()
	req := postForm("/evaluacion/entrega", url.Values{"descripcion": {"   "}}, started)
	testutil.ServeQuiet(handler.Deliver, rec, req)
	if attempts.Len() != 1 {
		t.Fatalf("empty delivery should keep the attempt, got %d live", attempts.Len())
	}

	rec = httptest.NewRecorder()
	req = postForm("/evaluacion/entrega", url.Values{"descripcion": {"Adjunto el análisis del caso."}}, started)
	testutil.ServeQuiet(handler.Deliver, rec, req)
	if attempts.Len() != 0 {
		t.Errorf("accepted delivery should drop the attempt, got %d live", attempts.Len())
	}
}

func TestAnswer_WithoutAttempt(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := postForm("/evaluacion/respuesta", url.Values{
		"pregunta": {"0"},
		"opcion":   {"0"},
	}, nil)
	testutil.ServeQuiet(handler.Answer, rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}
