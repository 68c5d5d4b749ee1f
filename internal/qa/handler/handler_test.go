package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/qa"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/qa/entity"
)

// stubAnswerer returns canned results without an index.
type stubAnswerer struct {
	result     qa.Result
	rebuildErr error
	rebuilds   int
}

func (s *stubAnswerer) Answer(_ context.Context, _ string) qa.Result { return s.result }
func (s *stubAnswerer) Rebuild(_ context.Context) error {
	s.rebuilds++
	return s.rebuildErr
}
func (s *stubAnswerer) CorpusSize() int { return 42 }

func TestAskReturnsAnswer(t *testing.T) {
	h := New(&stubAnswerer{result: qa.Result{
		Answer:  "Alice",
		Type:    entity.TypeWho,
		Outcome: qa.OutcomeAnswered,
	}}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ask?q=Who+is+going%3F", nil)
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp AskResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Answer != "Alice" || resp.QuestionType != "WHO" || !resp.Found {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Question != "Who is going?" {
		t.Errorf("question echoed as %q", resp.Question)
	}
}

func TestAskNotFoundStillOK(t *testing.T) {
	h := New(&stubAnswerer{result: qa.Result{
		Answer:  qa.NotFoundAnswer,
		Type:    entity.TypeGeneric,
		Outcome: qa.OutcomeNoMatch,
	}}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ask?q=unknown+topic", nil)
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (not-found is a valid answer)", rec.Code)
	}
	var resp AskResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Answer != qa.NotFoundAnswer || resp.Found {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAskMissingQuestion(t *testing.T) {
	h := New(&stubAnswerer{}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ask", nil)
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRefresh(t *testing.T) {
	stub := &stubAnswerer{}
	h := New(stub, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stub.rebuilds != 1 {
		t.Errorf("rebuilds = %d, want 1", stub.rebuilds)
	}
	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["messages"] != float64(42) {
		t.Errorf("messages = %v, want 42", resp["messages"])
	}
}

func TestRefreshFailure(t *testing.T) {
	h := New(&stubAnswerer{rebuildErr: errors.New("source down")}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestCacheStatsDisabled(t *testing.T) {
	h := New(&stubAnswerer{}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cache/stats", nil)
	rec := httptest.NewRecorder()
	h.CacheStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != "disabled" {
		t.Errorf("status = %q, want disabled", resp["status"])
	}
}

func TestCacheInvalidateDisabled(t *testing.T) {
	h := New(&stubAnswerer{}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cache/invalidate", nil)
	rec := httptest.NewRecorder()
	h.CacheInvalidate(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
