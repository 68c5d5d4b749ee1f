package corpus

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/config"
)

func TestRemoteSourcePaginates(t *testing.T) {
	pages := map[string]string{
		"0": `{"items": [
			{"user_name": "Alice", "message": "page one a", "timestamp": "2024-03-01T09:00:00Z"},
			{"user_name": "Bob", "message": "page one b", "timestamp": "2024-03-01T09:01:00Z"}
		]}`,
		"2": `{"items": [
			{"user_name": "Carol", "message": "page two", "timestamp": "2024-03-01T09:02:00Z"}
		]}`,
		"4": `{"items": []}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Query().Get("skip")]
		if !ok {
			t.Errorf("unexpected skip=%s", r.URL.Query().Get("skip"))
			body = `{"items": []}`
		}
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	src := NewRemoteSource(config.CorpusConfig{RemoteURL: srv.URL, PageLimit: 2})
	msgs, err := src.Messages(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	if msgs[0].Speaker != "Alice" || msgs[2].Speaker != "Carol" {
		t.Errorf("unexpected order: %s .. %s", msgs[0].Speaker, msgs[2].Speaker)
	}
}

func TestRemoteSourceFirstPageClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewRemoteSource(config.CorpusConfig{RemoteURL: srv.URL, PageLimit: 2})
	if _, err := src.Messages(context.Background()); err == nil {
		t.Error("expected error when the first page fails")
	}
}

func TestRemoteSourcePartialOnLaterPageError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("skip") != "0" {
			http.Error(w, "gone", http.StatusGone)
			return
		}
		fmt.Fprint(w, `{"items": [
			{"user_name": "Alice", "message": "only page", "timestamp": "2024-03-01T09:00:00Z"}
		]}`)
	}))
	defer srv.Close()

	src := NewRemoteSource(config.CorpusConfig{RemoteURL: srv.URL, PageLimit: 1})
	msgs, err := src.Messages(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 || msgs[0].Speaker != "Alice" {
		t.Errorf("expected the successfully fetched page, got %v", msgs)
	}
}
