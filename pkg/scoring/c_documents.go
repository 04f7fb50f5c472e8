package scoring

import (
	"fmt"
	"time"

	"github.com/aquascore/aquascore/pkg/signals"
)

// DocumentationScorer scores documentation completeness. Unlike DWSP,
// having no documents at all still earns a minimal nonzero floor.
type DocumentationScorer struct {
	CategoryWeight float64
	EmptyFloor     float64 // score when zero documents exist
	Base           float64
	CoverageBonus  float64 // max points scaled by required-type coverage
	RecencyBonus   float64 // points when a document was uploaded recently
}

func (s *DocumentationScorer) Category() Category { return CategoryDocumentation }
func (s *DocumentationScorer) Name() string       { return "Documentation" }
func (s *DocumentationScorer) Weight() float64    { return s.CategoryWeight }

func (s *DocumentationScorer) Evaluate(snap *signals.Snapshot, now time.Time) (float64, string) {
	d := snap.Documents

	if d.TotalDocuments == 0 {
		return s.EmptyFloor, "no documents uploaded"
	}

	present := d.TypesPresent()
	score := s.Base + s.CoverageBonus*float64(present)/float64(signals.RequiredDocumentTypes)

	detail := fmt.Sprintf("%d documents, %d of %d required types present",
		d.TotalDocuments, present, signals.RequiredDocumentTypes)

	if d.UploadedLast90 > 0 {
		score += s.RecencyBonus
		detail += fmt.Sprintf(", %d uploaded in last 90 days", d.UploadedLast90)
	} else {
		detail += ", none uploaded in last 90 days"
	}

	return score, detail
}
