package strings

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short string unchanged", "web, db", 20, "web, db"},
		{"exact length unchanged", "abcde", 5, "abcde"},
		{"long string truncated", "abcdefghij", 8, "abcde..."},
		{"newlines collapsed", "web\ndb\tcache", 20, "web db cache"},
		{"whitespace collapsed", "a    b", 20, "a b"},
		{"tiny maxLen clamped", "abcdefghij", 1, "a..."},
		{"empty string", "", 10, ""},
		{"multibyte runes kept intact", "ααααααααα", 6, "ααα..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, expected %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestJoinTruncated(t *testing.T) {
	if got := JoinTruncated([]string{"web", "db"}); got != "web, db" {
		t.Errorf("JoinTruncated = %q", got)
	}

	long := make([]string, 30)
	for i := range long {
		long[i] = "bundle"
	}
	got := JoinTruncated(long)
	if len([]rune(got)) != DefaultCellMaxLen {
		t.Errorf("JoinTruncated length = %d, expected %d", len([]rune(got)), DefaultCellMaxLen)
	}
}
