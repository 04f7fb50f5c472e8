package collect

import (
	"context"
	"fmt"

	"github.com/aquascore/aquascore/pkg/signals"
)

// Documents aggregates documentation coverage across the four required
// document-type categories plus upload recency.
func (c *Collector) Documents(ctx context.Context, orgID string) (signals.DocumentSignals, error) {
	var d signals.DocumentSignals

	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(bool_or(doc_type = 'plan'), false),
		        COALESCE(bool_or(doc_type = 'report'), false),
		        COALESCE(bool_or(doc_type = 'procedure'), false),
		        COALESCE(bool_or(doc_type = 'certificate'), false),
		        COUNT(*) FILTER (WHERE uploaded_at >= now() - interval '90 days')
		 FROM documents WHERE org_id = $1`,
		orgID,
	).Scan(&d.TotalDocuments, &d.HasPlan, &d.HasReport, &d.HasProcedure, &d.HasCertificate, &d.UploadedLast90)
	if err != nil {
		return signals.DocumentSignals{}, fmt.Errorf("collect document signals: %w", err)
	}
	return d, nil
}
