package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "messages.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSnapshotSourceMessages(t *testing.T) {
	path := writeSnapshot(t, `{
		"items": [
			{"user_name": "Bob", "message": "because the venue changed", "timestamp": "2024-03-01T09:01:00Z"},
			{"user_name": "Alice", "message": "Meeting in Paris on Monday", "timestamp": "2024-03-01T09:00:00Z"},
			{"user_name": "", "message": "no speaker, dropped", "timestamp": "2024-03-01T09:02:00Z"}
		]
	}`)

	msgs, err := NewSnapshotSource(path).Messages(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2 (malformed entry skipped)", len(msgs))
	}
	if msgs[0].Speaker != "Alice" || msgs[1].Speaker != "Bob" {
		t.Errorf("messages not sorted by timestamp: %v, %v", msgs[0].Speaker, msgs[1].Speaker)
	}
}

func TestSnapshotSourceMissingFile(t *testing.T) {
	_, err := NewSnapshotSource(filepath.Join(t.TempDir(), "absent.json")).Messages(context.Background())
	if err == nil {
		t.Error("expected error for missing snapshot file")
	}
}

func TestSnapshotSourceBadJSON(t *testing.T) {
	path := writeSnapshot(t, `{"items": [`)
	if _, err := NewSnapshotSource(path).Messages(context.Background()); err == nil {
		t.Error("expected error for malformed snapshot")
	}
}

func TestSnapshotSourceEmpty(t *testing.T) {
	path := writeSnapshot(t, `{"items": []}`)
	msgs, err := NewSnapshotSource(path).Messages(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 0 {
		t.Errorf("got %d messages, want 0", len(msgs))
	}
}
