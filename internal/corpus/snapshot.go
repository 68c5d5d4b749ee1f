package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// SnapshotSource loads the corpus from a local JSON snapshot file of the
// form {"items": [{"user_name", "message", "timestamp"}, ...]}.
type SnapshotSource struct {
	path   string
	logger *slog.Logger
}

// NewSnapshotSource creates a SnapshotSource reading from path.
func NewSnapshotSource(path string) *SnapshotSource {
	return &SnapshotSource{
		path:   path,
		logger: slog.Default().With("component", "corpus-snapshot", "path", path),
	}
}

type snapshotFile struct {
	Items []wireMessage `json:"items"`
}

// Messages reads and parses the snapshot file. Malformed entries are skipped
// rather than failing the whole load.
func (s *SnapshotSource) Messages(ctx context.Context) ([]Message, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", s.path, err)
	}
	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", s.path, err)
	}
	msgs := convert(file.Items)
	if skipped := len(file.Items) - len(msgs); skipped > 0 {
		s.logger.Warn("skipped malformed snapshot entries", "skipped", skipped)
	}
	s.logger.Info("loaded corpus from snapshot", "messages", len(msgs))
	return msgs, nil
}
