package winget

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSerializeLayout(t *testing.T) {
	r := NewReport("2026-01-22T12:00:00Z", []Update{
		{Name: "7-Zip", Version: "23.01", Source: "winget"},
	})

	data, err := r.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}

	want := `{
  "timestamp": "2026-01-22T12:00:00Z",
  "updateCount": 1,
  "updates": [
    {
      "name": "7-Zip",
      "version": "23.01",
      "source": "winget"
    }
  ]
}
`
	if string(data) != want {
		t.Errorf("Serialize() =\n%s\nwant\n%s", data, want)
	}
}

func TestSerializeEmptyReport(t *testing.T) {
	tests := []struct {
		name    string
		updates []Update
	}{
		{"nil slice", nil},
		{"empty slice", []Update{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := NewReport("2026-01-22T12:00:00Z", tt.updates).Serialize()
			if err != nil {
				t.Fatalf("Serialize() error: %v", err)
			}
			if !strings.Contains(string(data), `"updateCount": 0`) {
				t.Errorf("expected updateCount 0, got %s", data)
			}
			if !strings.Contains(string(data), `"updates": []`) {
				t.Errorf("expected empty updates array, got %s", data)
			}
		})
	}
}

// TestSerializeKeyOrder tests that keys appear in the documented order
func TestSerializeKeyOrder(t *testing.T) {
	data, err := NewReport("ts", []Update{{Name: "n", Version: "v", Source: "s"}}).Serialize()
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}

	out := string(data)
	keys := []string{`"timestamp"`, `"updateCount"`, `"updates"`, `"name"`, `"version"`, `"source"`}
	last := -1
	for _, k := range keys {
		i := strings.Index(out, k)
		if i <= last {
			t.Fatalf("key %s out of order in %s", k, out)
		}
		last = i
	}
}

func TestSerializeEscaping(t *testing.T) {
	name := "Weird \"Quoted\" \\Path\\ \b\n\r\t <&>"
	data, err := NewReport("ts", []Update{{Name: name, Version: "1", Source: "winget"}}).Serialize()
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}

	out := string(data)
	for _, esc := range []string{`\"Quoted\"`, `\\Path\\`, `\b`, `\n`, `\r`, `\t`, `<&>`} {
		if !strings.Contains(out, esc) {
			t.Errorf("expected %s in %s", esc, out)
		}
	}

	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Updates[0].Name != name {
		t.Errorf("decoded name = %q, want %q", decoded.Updates[0].Name, name)
	}
}

func TestNewReportCopiesUpdates(t *testing.T) {
	updates := []Update{{Name: "a", Version: "1", Source: "winget"}}
	r := NewReport("ts", updates)
	updates[0].Name = "changed"

	if r.Updates[0].Name != "a" {
		t.Error("NewReport must not share the caller's slice")
	}
}

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2026, 1, 22, 13, 0, 0, 0, loc)

	if got := FormatTimestamp(ts); got != "2026-01-22T12:00:00Z" {
		t.Errorf("FormatTimestamp() = %q", got)
	}
}

func TestWriteReportTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".winget-monitor")
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 4096)), 0644); err != nil {
		t.Fatalf("Failed to seed output file: %v", err)
	}

	if err := WriteReport(path, []byte("{}")); err != nil {
		t.Fatalf("WriteReport() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("expected truncated file, got %d bytes", len(data))
	}
}

func TestWriteReportFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", ".winget-monitor")

	err := WriteReport(path, []byte("{}"))
	if err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}
}

func genUpdate() gopter.Gen {
	return gopter.CombineGens(
		gen.AnyString(),
		gen.AnyString(),
		gen.AlphaString(),
	).Map(func(v []interface{}) Update {
		return Update{Name: v[0].(string), Version: v[1].(string), Source: v[2].(string)}
	})
}

// TestSerializeProperties tests updateCount consistency and decode round-trip
func TestSerializeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("updateCount equals the number of updates", prop.ForAll(
		func(updates []Update) bool {
			data, err := NewReport("ts", updates).Serialize()
			if err != nil {
				return false
			}
			var decoded Report
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Logf("invalid JSON: %v", err)
				return false
			}
			return decoded.UpdateCount == len(updates) && len(decoded.Updates) == len(updates)
		},
		gen.SliceOf(genUpdate()),
	))

	properties.Property("names with quotes and backslashes decode to the same name", prop.ForAll(
		func(prefix, suffix string) bool {
			name := prefix + `"\` + suffix
			data, err := NewReport("ts", []Update{{Name: name, Version: "1", Source: "winget"}}).Serialize()
			if err != nil {
				return false
			}
			var decoded Report
			if err := json.Unmarshal(data, &decoded); err != nil {
				return false
			}
			return decoded.Updates[0].Name == name
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
