// Package framestore keeps sampled transitions in a SQLite database so that
// later builds can be checked against them.
package framestore

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"honnef.co/go/fluidcard"
)

//go:embed schema.sql
var schemaSQL string

// OutlinePrecision is the number of decimals outlines are stored with. Check
// compares outlines at this precision.
const OutlinePrecision = 3

// timeLayout is fixed-width so that timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned for unknown recording IDs.
var ErrNotFound = errors.New("recording not found")

// Recording describes one stored transition.
type Recording struct {
	ID         uuid.UUID           `json:"id"`
	Name       string              `json:"name"`
	Direction  fluidcard.Direction `json:"direction"`
	FPS        float64             `json:"fps"`
	Width      float64             `json:"width"`
	Config     fluidcard.Config    `json:"config"`
	FrameCount int                 `json:"frame_count"`
	CreatedAt  time.Time           `json:"created_at"`
}

// StoredFrame is one frame of a recording.
type StoredFrame struct {
	Seq      int
	Elapsed  time.Duration
	Progress float64
	// Outline is the frame's outline as SVG path data.
	Outline string
	Frame   fluidcard.Frame
}

// Store is a recording database. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. The path ":memory:" opens a
// private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// SQLite serializes writers anyway, and every connection to :memory: would
	// see its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func outlineSVG(o fluidcard.Outline) string {
	return o.SVG(fluidcard.SVGOptions{MaxPrecision: OutlinePrecision})
}

// Record samples a transition and saves it under name.
func (s *Store) Record(ctx context.Context, name string, cfg fluidcard.Config, width float64, dir fluidcard.Direction, fps float64) (Recording, error) {
	if width == 0 {
		width = cfg.ContentWidth
	}
	frames, err := fluidcard.Sample(cfg, width, dir, fps)
	if err != nil {
		return Recording{}, err
	}
	return s.Save(ctx, Recording{
		Name:      name,
		Direction: dir,
		FPS:       fps,
		Width:     width,
		Config:    cfg,
	}, frames)
}

// Save stores frames under a new recording. The recording's ID, frame count
// and creation time are filled in.
func (s *Store) Save(ctx context.Context, rec Recording, frames []fluidcard.Frame) (Recording, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Recording{}, fmt.Errorf("generating UUID v7: %w", err)
	}
	rec.ID = id
	rec.FrameCount = len(frames)
	rec.CreatedAt = time.Now().UTC()

	cfgJSON, err := json.Marshal(rec.Config)
	if err != nil {
		return Recording{}, fmt.Errorf("encoding config: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Recording{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO recordings (recording_id, name, direction, fps, width, config, frame_count, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		rec.ID.String(), rec.Name, rec.Direction.String(), rec.FPS, rec.Width, string(cfgJSON), rec.FrameCount, rec.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Recording{}, fmt.Errorf("inserting recording: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO frames (recording_id, seq, elapsed_ns, progress, outline, frame) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return Recording{}, fmt.Errorf("preparing frame insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range frames {
		data, err := json.Marshal(f)
		if err != nil {
			return Recording{}, fmt.Errorf("encoding frame %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, rec.ID.String(), i, int64(f.Elapsed), f.Progress, outlineSVG(f.Outline), string(data)); err != nil {
			return Recording{}, fmt.Errorf("inserting frame %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Recording{}, fmt.Errorf("committing recording: %w", err)
	}
	return rec, nil
}

const recordingColumns = "recording_id, name, direction, fps, width, config, frame_count, created_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanRecording(row scanner) (Recording, error) {
	var (
		rec                     Recording
		id, dir, cfg, createdAt string
	)
	if err := row.Scan(&id, &rec.Name, &dir, &rec.FPS, &rec.Width, &cfg, &rec.FrameCount, &createdAt); err != nil {
		return Recording{}, err
	}
	var err error
	if rec.ID, err = uuid.Parse(id); err != nil {
		return Recording{}, fmt.Errorf("parsing recording ID %q: %w", id, err)
	}
	if rec.Direction, err = fluidcard.ParseDirection(dir); err != nil {
		return Recording{}, err
	}
	if err := json.Unmarshal([]byte(cfg), &rec.Config); err != nil {
		return Recording{}, fmt.Errorf("decoding config of %s: %w", id, err)
	}
	if rec.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return Recording{}, fmt.Errorf("parsing creation time of %s: %w", id, err)
	}
	return rec, nil
}

// List returns all recordings, newest first.
func (s *Store) List(ctx context.Context) ([]Recording, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordingColumns+" FROM recordings ORDER BY created_at DESC, recording_id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("listing recordings: %w", err)
	}
	defer rows.Close()

	var recs []Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Get returns the recording with the given ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Recording, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordingColumns+" FROM recordings WHERE recording_id = ?", id.String(),
	)
	rec, err := scanRecording(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Recording{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Recording{}, fmt.Errorf("getting recording %s: %w", id, err)
	}
	return rec, nil
}

// Frames returns the frames of a recording in order.
func (s *Store) Frames(ctx context.Context, id uuid.UUID) ([]StoredFrame, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT seq, elapsed_ns, progress, outline, frame FROM frames WHERE recording_id = ? ORDER BY seq",
		id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("listing frames of %s: %w", id, err)
	}
	defer rows.Close()

	var frames []StoredFrame
	for rows.Next() {
		var (
			sf      StoredFrame
			elapsed int64
			data    string
		)
		if err := rows.Scan(&sf.Seq, &elapsed, &sf.Progress, &sf.Outline, &data); err != nil {
			return nil, fmt.Errorf("scanning frame: %w", err)
		}
		sf.Elapsed = time.Duration(elapsed)
		if err := json.Unmarshal([]byte(data), &sf.Frame); err != nil {
			return nil, fmt.Errorf("decoding frame %d of %s: %w", sf.Seq, id, err)
		}
		frames = append(frames, sf)
	}
	return frames, rows.Err()
}

// Delete removes a recording and its frames.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM frames WHERE recording_id = ?", id.String()); err != nil {
		return fmt.Errorf("deleting frames of %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM recordings WHERE recording_id = ?", id.String())
	if err != nil {
		return fmt.Errorf("deleting recording %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return tx.Commit()
}

// Mismatch is a frame whose outline differs from the recording. A missing
// frame on either side has an empty outline.
type Mismatch struct {
	Seq  int    `json:"seq"`
	Want string `json:"want"`
	Got  string `json:"got"`
}

// Check samples the recording's transition again with its stored
// configuration and reports every frame whose outline changed.
func (s *Store) Check(ctx context.Context, id uuid.UUID) ([]Mismatch, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	want, err := s.Frames(ctx, id)
	if err != nil {
		return nil, err
	}
	got, err := fluidcard.Sample(rec.Config, rec.Width, rec.Direction, rec.FPS)
	if err != nil {
		return nil, fmt.Errorf("sampling %s: %w", id, err)
	}

	var out []Mismatch
	for i := range max(len(want), len(got)) {
		var m Mismatch
		m.Seq = i
		if i < len(want) {
			m.Want = want[i].Outline
		}
		if i < len(got) {
			m.Got = outlineSVG(got[i].Outline)
		}
		if m.Want != m.Got {
			out = append(out, m)
		}
	}
	return out, nil
}
