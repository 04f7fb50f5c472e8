package archive

import (
	"context"
	"os"
	"testing"
)

func TestLocalArchiveRoundTrip(t *testing.T) {
	a := NewLocalArchive(t.TempDir())
	ctx := context.Background()

	score := []byte(`{"overall":74}`)
	if err := a.PutScore(ctx, "org-1", "score-1", score); err != nil {
		t.Fatalf("PutScore: %v", err)
	}
	got, err := a.GetScore(ctx, "org-1", "score-1")
	if err != nil {
		t.Fatalf("GetScore: %v", err)
	}
	if string(got) != string(score) {
		t.Errorf("GetScore = %s, want %s", got, score)
	}

	snap := []byte(`{"org_id":"org-1"}`)
	if err := a.PutSnapshot(ctx, "org-1", "score-1", snap); err != nil {
		t.Fatalf("PutSnapshot: %v", err)
	}
	got, err = a.GetSnapshot(ctx, "org-1", "score-1")
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if string(got) != string(snap) {
		t.Errorf("GetSnapshot = %s, want %s", got, snap)
	}
}

func TestLocalArchiveScoresAndSnapshotsSeparate(t *testing.T) {
	a := NewLocalArchive(t.TempDir())
	ctx := context.Background()

	if err := a.PutScore(ctx, "org-1", "id", []byte("score")); err != nil {
		t.Fatalf("PutScore: %v", err)
	}
	if _, err := a.GetSnapshot(ctx, "org-1", "id"); err == nil {
		t.Error("expected snapshot lookup to miss when only score exists")
	}
}

func TestLocalArchiveNotFound(t *testing.T) {
	a := NewLocalArchive(t.TempDir())
	_, err := a.GetScore(context.Background(), "org-x", "missing")
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
