package report

import (
	"encoding/json"
	"io"

	"github.com/aquascore/aquascore/pkg/scoring"
)

// JSONRenderer marshals ComplianceScore to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, score *scoring.ComplianceScore) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(score)
}
