// Package anchordb implements the SQLite-backed native anchor store. It is
// the reference implementation of the types.NativeStore contract; device
// world-tracking backends replace it behind the same interface.
package anchordb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/spatialkit/anchorage/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// dbFileName is the anchor database file inside the data directory.
const dbFileName = "anchors.db"

// AnchorRecord is one stored anchor, as listed for maintenance tooling.
type AnchorRecord struct {
	AnchorID  string
	Pose      types.Pose
	Accuracy  types.Accuracy
	UpdatedAt time.Time
}

// Store persists anchors in a SQLite database under a data directory.
type Store struct {
	mu sync.RWMutex
	db *sql.DB
}

// Open creates the data directory if needed, opens the anchor database,
// and applies the schema. Re-opening an existing database keeps its rows.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open anchor db: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// SaveAnchor upserts the anchor row. Idempotent per anchor ID: retrying a
// save overwrites the same row rather than accumulating.
func (s *Store) SaveAnchor(ctx context.Context, anchorID string, pose types.Pose, accuracy types.Accuracy) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return fmt.Errorf("anchor db is closed")
	}
	if anchorID == "" {
		return types.ErrNoAnchorID
	}

	var acc sql.NullFloat64
	if accuracy.Known() {
		acc = sql.NullFloat64{Float64: float64(accuracy), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO anchors (
			anchor_id, pos_x, pos_y, pos_z, rot_x, rot_y, rot_z, rot_w,
			scale_x, scale_y, scale_z, accuracy, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(anchor_id) DO UPDATE SET
			pos_x = excluded.pos_x, pos_y = excluded.pos_y, pos_z = excluded.pos_z,
			rot_x = excluded.rot_x, rot_y = excluded.rot_y, rot_z = excluded.rot_z,
			rot_w = excluded.rot_w,
			scale_x = excluded.scale_x, scale_y = excluded.scale_y, scale_z = excluded.scale_z,
			accuracy = excluded.accuracy, updated_at = excluded.updated_at`,
		anchorID,
		pose.Position.X, pose.Position.Y, pose.Position.Z,
		pose.Rotation.X, pose.Rotation.Y, pose.Rotation.Z, pose.Rotation.W,
		pose.Scale.X, pose.Scale.Y, pose.Scale.Z,
		acc,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save anchor %s: %w", anchorID, err)
	}
	return nil
}

// LoadAnchor reads one anchor. Returns types.ErrAnchorNotFound when no row
// exists for the ID.
func (s *Store) LoadAnchor(ctx context.Context, anchorID string) (types.Pose, types.Accuracy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return types.Pose{}, types.AccuracyUnknown, fmt.Errorf("anchor db is closed")
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT pos_x, pos_y, pos_z, rot_x, rot_y, rot_z, rot_w,
		       scale_x, scale_y, scale_z, accuracy
		FROM anchors WHERE anchor_id = ?`, anchorID)

	var pose types.Pose
	var acc sql.NullFloat64
	err := row.Scan(
		&pose.Position.X, &pose.Position.Y, &pose.Position.Z,
		&pose.Rotation.X, &pose.Rotation.Y, &pose.Rotation.Z, &pose.Rotation.W,
		&pose.Scale.X, &pose.Scale.Y, &pose.Scale.Z,
		&acc,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Pose{}, types.AccuracyUnknown, types.ErrAnchorNotFound
	}
	if err != nil {
		return types.Pose{}, types.AccuracyUnknown, fmt.Errorf("load anchor %s: %w", anchorID, err)
	}

	accuracy := types.AccuracyUnknown
	if acc.Valid {
		accuracy = types.Accuracy(acc.Float64)
	}
	return pose, accuracy, nil
}

// ListAnchors returns all stored anchors ordered by ID.
func (s *Store) ListAnchors(ctx context.Context) ([]AnchorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, fmt.Errorf("anchor db is closed")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT anchor_id, pos_x, pos_y, pos_z, rot_x, rot_y, rot_z, rot_w,
		       scale_x, scale_y, scale_z, accuracy, updated_at
		FROM anchors ORDER BY anchor_id`)
	if err != nil {
		return nil, fmt.Errorf("list anchors: %w", err)
	}
	defer rows.Close()

	var records []AnchorRecord
	for rows.Next() {
		var rec AnchorRecord
		var acc sql.NullFloat64
		var updated string
		if err := rows.Scan(
			&rec.AnchorID,
			&rec.Pose.Position.X, &rec.Pose.Position.Y, &rec.Pose.Position.Z,
			&rec.Pose.Rotation.X, &rec.Pose.Rotation.Y, &rec.Pose.Rotation.Z, &rec.Pose.Rotation.W,
			&rec.Pose.Scale.X, &rec.Pose.Scale.Y, &rec.Pose.Scale.Z,
			&acc, &updated,
		); err != nil {
			return nil, fmt.Errorf("scan anchor: %w", err)
		}
		rec.Accuracy = types.AccuracyUnknown
		if acc.Valid {
			rec.Accuracy = types.Accuracy(acc.Float64)
		}
		if ts, err := time.Parse(time.RFC3339Nano, updated); err == nil {
			rec.UpdatedAt = ts
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteAnchor removes one anchor. Returns types.ErrAnchorNotFound when no
// row matched.
func (s *Store) DeleteAnchor(ctx context.Context, anchorID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return fmt.Errorf("anchor db is closed")
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM anchors WHERE anchor_id = ?`, anchorID)
	if err != nil {
		return fmt.Errorf("delete anchor %s: %w", anchorID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrAnchorNotFound
	}
	return nil
}
