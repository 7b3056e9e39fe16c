package framestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/fluidcard"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRead(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	rec, err := s.Record(ctx, "baseline", fluidcard.DefaultConfig(), 0, fluidcard.Expand, 30)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, 295.0, rec.Width)
	assert.Greater(t, rec.FrameCount, 10)

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Name, got.Name)
	assert.Equal(t, fluidcard.Expand, got.Direction)
	assert.Equal(t, rec.Config, got.Config)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))

	frames, err := s.Frames(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, frames, rec.FrameCount)
	for i, f := range frames {
		assert.Equal(t, i, f.Seq)
		assert.NotEmpty(t, f.Outline)
	}
	last := frames[len(frames)-1]
	assert.True(t, last.Frame.Done)
	assert.Equal(t, fluidcard.State{Phase: fluidcard.PhaseIdle, Expanded: true}, last.Frame.State)
	assert.Equal(t, 1.0, last.Progress)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	recs, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)

	a, err := s.Record(ctx, "a", fluidcard.DefaultConfig(), 0, fluidcard.Expand, 10)
	require.NoError(t, err)
	b, err := s.Record(ctx, "b", fluidcard.DefaultConfig(), 320, fluidcard.Collapse, 10)
	require.NoError(t, err)

	recs, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	// UUIDv7s sort by creation time.
	assert.Equal(t, b.ID, recs[0].ID)
	assert.Equal(t, a.ID, recs[1].ID)
	assert.Equal(t, 320.0, recs[0].Width)
}

func TestCheck(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	rec, err := s.Record(ctx, "baseline", fluidcard.DefaultConfig(), 0, fluidcard.Collapse, 60)
	require.NoError(t, err)
	mismatches, err := s.Check(ctx, rec.ID)
	require.NoError(t, err)
	assert.Empty(t, mismatches)

	// A recording made with a different card no longer matches.
	cfg := fluidcard.DefaultConfig()
	cfg.Gap = 40
	frames, err := fluidcard.Sample(cfg, 0, fluidcard.Collapse, 60)
	require.NoError(t, err)
	tampered, err := s.Save(ctx, Recording{
		Name:      "tampered",
		Direction: fluidcard.Collapse,
		FPS:       60,
		Width:     cfg.ContentWidth,
		Config:    fluidcard.DefaultConfig(),
	}, frames)
	require.NoError(t, err)

	mismatches, err = s.Check(ctx, tampered.ID)
	require.NoError(t, err)
	require.NotEmpty(t, mismatches)
	assert.Equal(t, 0, mismatches[0].Seq)
	assert.NotEqual(t, mismatches[0].Want, mismatches[0].Got)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	rec, err := s.Record(ctx, "gone", fluidcard.DefaultConfig(), 0, fluidcard.Expand, 10)
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, rec.ID))

	_, err = s.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Frames(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, rec.ID), ErrNotFound)
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "recordings.db")

	s, err := Open(path)
	require.NoError(t, err)
	rec, err := s.Record(ctx, "kept", fluidcard.DefaultConfig(), 0, fluidcard.Expand, 10)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Name)
}

func TestRecordInvalid(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Record(context.Background(), "bad", fluidcard.DefaultConfig(), 0, fluidcard.Expand, 0)
	assert.ErrorIs(t, err, fluidcard.ErrInvalidConfiguration)
}
