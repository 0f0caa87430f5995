package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/entail/score"
)

// JSONRenderer writes score results as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes the results as a JSON array. A nil slice is written
// as an empty array.
func (r *JSONRenderer) Render(results []score.Result) error {
	if results == nil {
		results = []score.Result{}
	}
	enc := json.NewEncoder(r.W)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
