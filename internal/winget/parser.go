package winget

import (
	"strings"
	"unicode/utf8"
)

// DefaultSource is reported when a row has no Source column value
const DefaultSource = "winget"

// noUpgradeSentinels short-circuit parsing when present anywhere in the output
var noUpgradeSentinels = []string{
	"No available upgrades",
	"No updates available",
}

// Update is one row of the upgrade listing. Version holds the Available column.
type Update struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Source  string `json:"source"`
}

// Columns holds the character offsets of the header labels, -1 when absent
type Columns struct {
	Name      int
	ID        int
	Version   int
	Available int
	Source    int
}

// IsHeader reports whether line names the Name, Version and Available columns
func IsHeader(line string) bool {
	return strings.Contains(line, "Name") &&
		strings.Contains(line, "Version") &&
		strings.Contains(line, "Available")
}

// ParseColumns derives column offsets from a header line. Offsets count
// characters, not bytes.
func ParseColumns(header string) Columns {
	return Columns{
		Name:      runeIndex(header, "Name"),
		ID:        runeIndex(header, "Id"),
		Version:   runeIndex(header, "Version"),
		Available: runeIndex(header, "Available"),
		Source:    runeIndex(header, "Source"),
	}
}

func runeIndex(s, substr string) int {
	i := strings.Index(s, substr)
	if i < 0 {
		return -1
	}
	return utf8.RuneCountInString(s[:i])
}

// ParseRow slices a data line on the header grid. It returns false when the
// line cannot hold a record for these columns.
func (c Columns) ParseRow(line string) (u Update, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			u, ok = Update{}, false
		}
	}()

	row := []rune(line)
	if len(row) < c.Available {
		return Update{}, false
	}

	if c.Name < 0 || c.ID <= c.Name || c.ID > len(row) {
		return Update{}, false
	}
	name := strings.TrimSpace(string(row[c.Name:c.ID]))

	if c.Version < 0 || c.Available <= c.Version || c.Available >= len(row) {
		return Update{}, false
	}
	end := len(row)
	if c.Source > c.Available && c.Source < end {
		end = c.Source
	}
	version := strings.TrimSpace(string(row[c.Available:end]))

	source := DefaultSource
	if c.Source >= 0 && c.Source < len(row) {
		source = strings.TrimSpace(string(row[c.Source:]))
	}

	return Update{Name: name, Version: version, Source: source}, true
}

// splitLines splits on \n, \r\n and lone \r
func splitLines(s string) []string {
	s = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(s)
	return strings.Split(s, "\n")
}

// ParseUpgradeOutput turns `winget upgrade` output into update records in
// listing order. It never fails; output it cannot read yields no records.
func ParseUpgradeOutput(output string) []Update {
	for _, sentinel := range noUpgradeSentinels {
		if strings.Contains(output, sentinel) {
			return []Update{}
		}
	}

	lines := splitLines(output)

	headerIndex := -1
	for i, line := range lines {
		if IsHeader(line) {
			headerIndex = i
			break
		}
	}
	if headerIndex == -1 {
		return []Update{}
	}

	separatorIndex := headerIndex + 1
	if separatorIndex >= len(lines) || !strings.Contains(lines[separatorIndex], "---") {
		return []Update{}
	}

	cols := ParseColumns(lines[headerIndex])
	updates := []Update{}

	for _, line := range lines[separatorIndex+1:] {
		if strings.TrimSpace(line) == "" ||
			strings.HasPrefix(line, "No") ||
			strings.Contains(line, "upgrades available") {
			continue
		}

		// Footer section
		if strings.HasPrefix(line, "--") ||
			strings.HasPrefix(line, "The") ||
			strings.HasPrefix(line, "Found") {
			break
		}

		if u, ok := cols.ParseRow(line); ok {
			updates = append(updates, u)
		}
	}

	return updates
}
