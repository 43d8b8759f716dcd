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

// DescriptionStore implements repository.DescriptionRepository.
type DescriptionStore struct {
	conn *sql.DB
}

var _ repository.DescriptionRepository = (*DescriptionStore)(nil)

// Create inserts a generation result. The ID and creation time are assigned
// here and written back to the caller's struct.
func (s *DescriptionStore) Create(ctx context.Context, desc *model.GeneratedDescription) error {
	desc.ID = xid.New().String()
	desc.CreatedAt = time.Now().UTC()

	var tokens sql.NullInt64
	if desc.TokensUsed != nil {
		tokens = sql.NullInt64{Int64: int64(*desc.TokensUsed), Valid: true}
	}

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO descriptions
		 (id, description_type, input_text, generated_description, tokens_used, model_version, processing_time, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		desc.ID,
		string(desc.Type),
		desc.InputText,
		desc.GeneratedDescription,
		tokens,
		desc.ModelVersion,
		desc.ProcessingTime,
		desc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating description: %w", err)
	}
	return nil
}

// GetByID fetches one generation result.
func (s *DescriptionStore) GetByID(ctx context.Context, id string) (*model.GeneratedDescription, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, description_type, input_text, generated_description, tokens_used, model_version, processing_time, created_at
		 FROM descriptions WHERE id = ?`, id)

	desc, err := scanDescription(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("description", id)
		}
		return nil, fmt.Errorf("sqlite: getting description: %w", err)
	}
	return desc, nil
}

// ListRecent returns the newest generation results, newest first.
func (s *DescriptionStore) ListRecent(ctx context.Context, limit int) ([]model.GeneratedDescription, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, description_type, input_text, generated_description, tokens_used, model_version, processing_time, created_at
		 FROM descriptions ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing descriptions: %w", err)
	}
	defer rows.Close()

	descs := []model.GeneratedDescription{}
	for rows.Next() {
		desc, err := scanDescription(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning description: %w", err)
		}
		descs = append(descs, *desc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating descriptions: %w", err)
	}
	return descs, nil
}

// Count returns the total number of generation results.
func (s *DescriptionStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM descriptions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: counting descriptions: %w", err)
	}
	return n, nil
}

// CountSince returns the number of generation results created after since.
func (s *DescriptionStore) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := s.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM descriptions WHERE created_at >= ?`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting recent descriptions: %w", err)
	}
	return n, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDescription(s scanner) (*model.GeneratedDescription, error) {
	var (
		desc   model.GeneratedDescription
		typ    string
		tokens sql.NullInt64
	)
	err := s.Scan(
		&desc.ID,
		&typ,
		&desc.InputText,
		&desc.GeneratedDescription,
		&tokens,
		&desc.ModelVersion,
		&desc.ProcessingTime,
		&desc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	desc.Type = model.DescriptionType(typ)
	if tokens.Valid {
		t := int(tokens.Int64)
		desc.TokensUsed = &t
	}
	return &desc, nil
}
