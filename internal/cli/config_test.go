package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{}, false},
		{"pattern with pcre", Config{Pattern: "x", PCRE: true}, false},
		{"pcre without pattern", Config{PCRE: true}, true},
		{"ignore-case without pattern", Config{IgnoreCase: true}, true},
		{"negative workers", Config{Workers: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseColorMode(t *testing.T) {
	for in, want := range map[string]ColorMode{
		"auto":   ColorAuto,
		"":       ColorAuto,
		"always": ColorAlways,
		"never":  ColorNever,
	} {
		got, err := ParseColorMode(in)
		if err != nil || got != want {
			t.Errorf("ParseColorMode(%q) = %v, %v; want %v, nil", in, got, err, want)
		}
	}

	if _, err := ParseColorMode("sometimes"); err == nil {
		t.Error("ParseColorMode accepted an invalid mode")
	}
}

func TestLoadConfigArgs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	content := "# default flags\n--hidden\n\n-r\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FASTDIR_CONFIG_PATH", path)

	got := LoadConfigArgs()
	want := []string{"--hidden", "-r"}
	if !slices.Equal(got, want) {
		t.Errorf("LoadConfigArgs() = %v, want %v", got, want)
	}
}

func TestLoadConfigArgsMissingFile(t *testing.T) {
	t.Setenv("FASTDIR_CONFIG_PATH", filepath.Join(t.TempDir(), "nope"))
	if got := LoadConfigArgs(); got != nil {
		t.Errorf("LoadConfigArgs() = %v, want nil", got)
	}
}
