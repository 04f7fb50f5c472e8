// Package report defines output rendering for compliance score results.
// Implementations handle different output targets: terminal and JSON.
package report

import (
	"io"

	"github.com/aquascore/aquascore/pkg/scoring"
)

// Renderer produces formatted output from a ComplianceScore.
type Renderer interface {
	// Render writes the formatted score to the writer.
	Render(w io.Writer, score *scoring.ComplianceScore) error
}
