package winget

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Report is the snapshot written for external consumers
type Report struct {
	Timestamp   string   `json:"timestamp"`
	UpdateCount int      `json:"updateCount"`
	Updates     []Update `json:"updates"`
}

// NewReport builds a report whose UpdateCount always matches Updates
func NewReport(timestamp string, updates []Update) Report {
	list := make([]Update, len(updates))
	copy(list, updates)

	return Report{
		Timestamp:   timestamp,
		UpdateCount: len(list),
		Updates:     list,
	}
}

// FormatTimestamp renders t as an ISO-8601 UTC instant
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Serialize renders the report as two-space indented JSON with keys in
// declaration order. encoding/json escapes backslash, quote and control
// characters in a single pass; HTML characters are left as is.
func (r Report) Serialize() ([]byte, error) {
	if r.Updates == nil {
		r.Updates = []Update{}
	}
	r.UpdateCount = len(r.Updates)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteReport creates or truncates path with data. The write is not atomic.
func WriteReport(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
