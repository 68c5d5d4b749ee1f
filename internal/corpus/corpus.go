// Package corpus defines the conversation Message type and the sources that
// acquire the message corpus: a local JSON snapshot, a paginated remote API,
// and a Postgres table. All sources return messages sorted ascending by
// timestamp with ties broken by arrival order.
package corpus

import (
	"sort"
	"strings"
	"time"
)

// Message is a single chat message. Once loaded it is immutable; its
// identity everywhere else in the pipeline is its position in the
// timestamp-sorted corpus.
type Message struct {
	Speaker   string    `json:"user_name"`
	Text      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Document returns the text that is tokenized and indexed for this message.
// Speaker and body are combined so that queries naming a person rank that
// person's messages higher.
func (m Message) Document() string {
	return m.Speaker + " " + m.Text
}

// wireMessage is the JSON shape used by both the snapshot file and the
// remote API.
type wireMessage struct {
	UserName  string `json:"user_name"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// toMessage converts a wire entry, parsing its timestamp. Entries with a
// missing speaker or body are rejected; unparseable timestamps fall back to
// the current time rather than dropping the message.
func (w wireMessage) toMessage(now time.Time) (Message, bool) {
	if strings.TrimSpace(w.UserName) == "" || strings.TrimSpace(w.Message) == "" {
		return Message{}, false
	}
	ts, err := parseTimestamp(w.Timestamp)
	if err != nil {
		ts = now
	}
	return Message{
		Speaker:   w.UserName,
		Text:      w.Message,
		Timestamp: ts,
	}, true
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// convert turns wire entries into Messages, skipping malformed ones, and
// sorts the result. The sort is stable so that equal timestamps keep their
// original arrival order.
func convert(items []wireMessage) []Message {
	now := time.Now().UTC()
	msgs := make([]Message, 0, len(items))
	for _, it := range items {
		if m, ok := it.toMessage(now); ok {
			msgs = append(msgs, m)
		}
	}
	Sort(msgs)
	return msgs
}

// Sort orders messages ascending by timestamp, preserving arrival order for
// equal timestamps.
func Sort(msgs []Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})
}
