package strcoll

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"equal", "a.txt", "a.txt", 0},
		{"less", "a.txt", "b.txt", -1},
		{"greater", "b.txt", "a.txt", 1},
		{"upper before lower", "A.txt", "a.txt", -1},
		{"prefix shorter first", "a", "a.txt", -1},
		{"high bytes after ascii", "a", "\xc3\xa9", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare([]byte(tt.a), []byte(tt.b)); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareFold(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"equal", "a.txt", "a.txt", 0},
		{"fold-equal byte tie-break", "README", "readme", -1},
		{"fold order", "a.txt", "B.txt", -1},
		{"fold order reversed input", "B.txt", "a.txt", 1},
		{"shorter first", "ab", "ABC", -1},
		{"underscore before folded letter", "a_b", "aAb", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareFold([]byte(tt.a), []byte(tt.b)); got != tt.want {
				t.Errorf("CompareFold(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
