package output

import (
	"encoding/json"

	"github.com/dl/fastdir/internal/walker"
)

// JSONFormatter formats listings as JSON Lines (one object per entry).
type JSONFormatter struct{}

// NewJSONFormatter creates a JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// jsonEntry is the serialization format for one listed entry.
type jsonEntry struct {
	Type string `json:"type"`
	Dir  string `json:"dir,omitempty"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func (f *JSONFormatter) Format(buf []byte, res walker.DirResult, multiDir bool) []byte {
	for _, e := range res.Entries {
		je := jsonEntry{
			Type: "entry",
			Name: e.Name,
			Kind: e.Kind.String(),
		}
		if multiDir {
			je.Dir = res.Path
		}
		data, _ := json.Marshal(je)
		buf = append(buf, data...)
		buf = append(buf, '\n')
	}
	return buf
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
