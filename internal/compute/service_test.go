package compute

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aquascore/aquascore/internal/events"
	"github.com/aquascore/aquascore/internal/org"
	"github.com/aquascore/aquascore/pkg/scoring"
	"github.com/aquascore/aquascore/pkg/signals"
)

type fakeCollector struct {
	snap *signals.Snapshot
	err  error
}

func (f *fakeCollector) Snapshot(ctx context.Context, orgID string) (*signals.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := *f.snap
	s.OrgID = orgID
	return &s, nil
}

type fakeStore struct {
	history    []float64
	historyErr error
	inserted   []*org.ScoreRow
	insertErr  error
}

func (f *fakeStore) InsertScore(ctx context.Context, row *org.ScoreRow) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, row)
	return nil
}

func (f *fakeStore) RecentOverallScores(ctx context.Context, orgID string, limit int) ([]float64, error) {
	return f.history, f.historyErr
}

type fakeArchive struct {
	scores    map[string][]byte
	snapshots map[string][]byte
	err       error
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{scores: map[string][]byte{}, snapshots: map[string][]byte{}}
}

func (f *fakeArchive) PutScore(ctx context.Context, orgID, scoreID string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.scores[orgID+"/"+scoreID] = data
	return nil
}

func (f *fakeArchive) PutSnapshot(ctx context.Context, orgID, scoreID string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.snapshots[orgID+"/"+scoreID] = data
	return nil
}

type fakePublisher struct {
	events []events.ScoreComputed
	err    error
}

func (f *fakePublisher) PublishScore(ctx context.Context, ev events.ScoreComputed) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

type fakeRecorder struct {
	computed          int
	collectorFailures int
	warnings          map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{warnings: map[string]int{}}
}

func (f *fakeRecorder) ScoreComputed(orgID, status string, overall int, d time.Duration) {
	f.computed++
}
func (f *fakeRecorder) CollectorFailure()          { f.collectorFailures++ }
func (f *fakeRecorder) PersistWarning(sink string) { f.warnings[sink]++ }

func compliantSnapshot() *signals.Snapshot {
	return &signals.Snapshot{
		Plans: signals.PlanSignals{
			ApprovedPlans:     1,
			DaysSinceReview:   30,
			ElementCompletion: 1.0,
		},
		Assets: signals.AssetSignals{
			TotalAssets:     100,
			CriticalRisk:    0,
			InspectedLast90: 90,
		},
		Documents: signals.DocumentSignals{
			TotalDocuments: 12,
			HasPlan:        true,
			HasReport:      true,
			HasProcedure:   true,
			HasCertificate: true,
			UploadedLast90: 3,
		},
		Reports: signals.ReportSignals{
			AnnualThisYear: true,
			QuarterlyCount: 3,
			MonthlyLast90:  3,
		},
		Risk: signals.RiskSignals{
			TotalAssessments:    4,
			DaysSinceAssessment: 60,
			IncidentsLast90:     0,
		},
		CollectedAt: time.Now().UTC(),
	}
}

func newTestService(c SnapshotCollector, st ScoreStore, a Archiver, p Publisher, r Recorder) *Service {
	engine := scoring.NewEngine(scoring.DefaultScorers()...)
	return NewService(c, engine, st, a, p, r, 2)
}

func TestScoreOrganizationPersistsEverywhere(t *testing.T) {
	store := &fakeStore{history: []float64{70}}
	arch := newFakeArchive()
	pub := &fakePublisher{}
	rec := newFakeRecorder()

	svc := newTestService(&fakeCollector{snap: compliantSnapshot()}, store, arch, pub, rec)

	res, err := svc.ScoreOrganization(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("ScoreOrganization: %v", err)
	}
	if res.ScoreID == "" {
		t.Error("expected a score ID")
	}
	if res.Score.Overall < 90 {
		t.Errorf("Overall = %d, want >= 90 for a compliant organization", res.Score.Overall)
	}

	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d rows, want 1", len(store.inserted))
	}
	row := store.inserted[0]
	if row.OrgID != "org-1" || row.Overall != res.Score.Overall {
		t.Errorf("row = {%s %d}, want {org-1 %d}", row.OrgID, row.Overall, res.Score.Overall)
	}
	if row.ArchiveRef == "" || !strings.Contains(row.ArchiveRef, res.ScoreID) {
		t.Errorf("ArchiveRef = %q, want reference containing score ID", row.ArchiveRef)
	}

	if _, ok := arch.scores["org-1/"+res.ScoreID]; !ok {
		t.Error("score report not archived")
	}
	if _, ok := arch.snapshots["org-1/"+res.ScoreID]; !ok {
		t.Error("signal snapshot not archived")
	}

	if len(pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.events))
	}
	if pub.events[0].OrgID != "org-1" || pub.events[0].Overall != res.Score.Overall {
		t.Errorf("event = %+v, want org-1 with overall %d", pub.events[0], res.Score.Overall)
	}
	if pub.events[0].Trend != scoring.TrendImproving {
		t.Errorf("event trend = %s, want improving over history of 70", pub.events[0].Trend)
	}

	if rec.computed != 1 {
		t.Errorf("recorded %d computations, want 1", rec.computed)
	}
}

func TestScoreOrganizationCollectorFailureAborts(t *testing.T) {
	store := &fakeStore{}
	rec := newFakeRecorder()
	svc := newTestService(&fakeCollector{err: errors.New("db down")}, store, nil, nil, rec)

	_, err := svc.ScoreOrganization(context.Background(), "org-1")
	if err == nil {
		t.Fatal("expected error when collector fails")
	}
	if len(store.inserted) != 0 {
		t.Error("no score should be persisted when collection fails")
	}
	if rec.collectorFailures != 1 {
		t.Errorf("collector failures = %d, want 1", rec.collectorFailures)
	}
}

func TestScoreOrganizationPersistFailureIsNonFatal(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("insert failed")}
	arch := newFakeArchive()
	arch.err = errors.New("bucket gone")
	rec := newFakeRecorder()

	svc := newTestService(&fakeCollector{snap: compliantSnapshot()}, store, arch, nil, rec)

	res, err := svc.ScoreOrganization(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("persistence failure should not fail the run: %v", err)
	}
	if res.Score == nil {
		t.Fatal("expected a computed score despite sink failures")
	}
	if res.ArchiveRef != "" {
		t.Errorf("ArchiveRef = %q, want empty when archiving failed", res.ArchiveRef)
	}
	if rec.warnings["database"] == 0 {
		t.Error("expected a database persist warning")
	}
	if rec.warnings["archive"] == 0 {
		t.Error("expected an archive persist warning")
	}
}

func TestScoreOrganizationHistoryErrorAborts(t *testing.T) {
	// Prior scores exist but the query fails: the run must abort rather
	// than report an unknown trend for an organization with history.
	store := &fakeStore{
		history:    []float64{70},
		historyErr: errors.New("backing store unreachable"),
	}
	rec := newFakeRecorder()
	svc := newTestService(&fakeCollector{snap: compliantSnapshot()}, store, nil, nil, rec)

	res, err := svc.ScoreOrganization(context.Background(), "org-1")
	if err == nil {
		t.Fatal("expected error when the history lookup fails")
	}
	if res != nil {
		t.Errorf("res = %+v, want nil on an aborted run", res)
	}
	if len(store.inserted) != 0 {
		t.Error("no score should be persisted when the history lookup fails")
	}
	if rec.collectorFailures != 1 {
		t.Errorf("collector failures = %d, want 1", rec.collectorFailures)
	}
}

func TestScoreOrganizationDeterministicForSameSnapshot(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(&fakeCollector{snap: compliantSnapshot()}, store, nil, nil, nil)

	a, err := svc.ScoreOrganization(context.Background(), "org-1")
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.ScoreOrganization(context.Background(), "org-1")
	if err != nil {
		t.Fatal(err)
	}
	if a.Score.Overall != b.Score.Overall {
		t.Errorf("overall differs across identical runs: %d vs %d", a.Score.Overall, b.Score.Overall)
	}
	if a.ScoreID == b.ScoreID {
		t.Error("each run should get its own score ID")
	}
}
