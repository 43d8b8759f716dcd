package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"

	"descgen/internal/apperror"
	"descgen/internal/model"
	"descgen/internal/repository"
)

// CorrectionStore implements repository.CorrectionRepository.
type CorrectionStore struct {
	conn *sql.DB
}

var _ repository.CorrectionRepository = (*CorrectionStore)(nil)

// Create inserts a correction, assigning its ID and timestamp. An empty
// DescriptionID is stored as NULL so the foreign key stays satisfied.
func (s *CorrectionStore) Create(ctx context.Context, c *model.Correction) error {
	c.ID = xid.New().String()
	c.CreatedAt = time.Now().UTC()
	if c.CorrectionType == "" {
		c.CorrectionType = "general"
	}

	var descID sql.NullString
	if c.DescriptionID != "" {
		descID = sql.NullString{String: c.DescriptionID, Valid: true}
	}

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO corrections
		 (id, original_text, corrected_text, description_type, correction_type, description_id, notes, is_applied, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Original,
		c.Corrected,
		string(c.Type),
		c.CorrectionType,
		descID,
		c.Notes,
		c.IsApplied,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating correction: %w", err)
	}
	return nil
}

// GetByID fetches one correction.
func (s *CorrectionStore) GetByID(ctx context.Context, id string) (*model.Correction, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, original_text, corrected_text, description_type, correction_type, description_id, notes, is_applied, created_at
		 FROM corrections WHERE id = ?`, id)

	c, err := scanCorrection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("correction", id)
		}
		return nil, fmt.Errorf("sqlite: getting correction: %w", err)
	}
	return c, nil
}

// ListRecent returns the newest corrections, newest first.
func (s *CorrectionStore) ListRecent(ctx context.Context, limit int) ([]model.Correction, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, original_text, corrected_text, description_type, correction_type, description_id, notes, is_applied, created_at
		 FROM corrections ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing corrections: %w", err)
	}
	defer rows.Close()
	return collectCorrections(rows)
}

// ListUnapplied returns corrections of the given type that have not been
// applied yet, newest first. These feed the generation learning context.
func (s *CorrectionStore) ListUnapplied(ctx context.Context, typ model.DescriptionType, limit int) ([]model.Correction, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, original_text, corrected_text, description_type, correction_type, description_id, notes, is_applied, created_at
		 FROM corrections
		 WHERE is_applied = 0 AND description_type = ?
		 ORDER BY created_at DESC LIMIT ?`, string(typ), limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing unapplied corrections: %w", err)
	}
	defer rows.Close()
	return collectCorrections(rows)
}

// MarkApplied sets a correction's applied flag.
func (s *CorrectionStore) MarkApplied(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE corrections SET is_applied = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: marking correction applied: %w", err)
	}
	return requireRow(res, "correction", id)
}

// Count returns the total number of corrections.
func (s *CorrectionStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM corrections`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: counting corrections: %w", err)
	}
	return n, nil
}

// CountSince returns the number of corrections created after since.
func (s *CorrectionStore) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := s.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM corrections WHERE created_at >= ?`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting recent corrections: %w", err)
	}
	return n, nil
}

func scanCorrection(s scanner) (*model.Correction, error) {
	var (
		c      model.Correction
		typ    string
		descID sql.NullString
	)
	err := s.Scan(
		&c.ID,
		&c.Original,
		&c.Corrected,
		&typ,
		&c.CorrectionType,
		&descID,
		&c.Notes,
		&c.IsApplied,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Type = model.DescriptionType(typ)
	c.DescriptionID = descID.String
	return &c, nil
}

func collectCorrections(rows *sql.Rows) ([]model.Correction, error) {
	corrections := []model.Correction{}
	for rows.Next() {
		c, err := scanCorrection(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning correction: %w", err)
		}
		corrections = append(corrections, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating corrections: %w", err)
	}
	return corrections, nil
}
