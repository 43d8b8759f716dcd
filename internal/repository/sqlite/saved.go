package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"descgen/internal/apperror"
	"descgen/internal/model"
	"descgen/internal/repository"
)

// SavedDescriptionStore implements repository.SavedDescriptionRepository.
// Tags are stored as a JSON array in a TEXT column.
type SavedDescriptionStore struct {
	conn *sql.DB
}

var _ repository.SavedDescriptionRepository = (*SavedDescriptionStore)(nil)

// Create inserts a saved description, assigning its ID and timestamps.
func (s *SavedDescriptionStore) Create(ctx context.Context, desc *model.SavedDescription) error {
	desc.ID = xid.New().String()
	now := time.Now().UTC()
	desc.CreatedAt = now
	desc.UpdatedAt = now

	tags, err := encodeTags(desc.Tags)
	if err != nil {
		return fmt.Errorf("sqlite: encoding tags: %w", err)
	}

	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO saved_descriptions
		 (id, title, content, description_type, category, tags, is_public, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		desc.ID,
		desc.Title,
		desc.Content,
		string(desc.Type),
		desc.Category,
		tags,
		desc.IsPublic,
		desc.CreatedAt,
		desc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating saved description: %w", err)
	}
	return nil
}

// GetByID fetches one saved description.
func (s *SavedDescriptionStore) GetByID(ctx context.Context, id string) (*model.SavedDescription, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, title, content, description_type, category, tags, is_public, created_at, updated_at
		 FROM saved_descriptions WHERE id = ?`, id)

	desc, err := scanSaved(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("saved description", id)
		}
		return nil, fmt.Errorf("sqlite: getting saved description: %w", err)
	}
	return desc, nil
}

// List returns saved descriptions newest first, honoring the filter options.
func (s *SavedDescriptionStore) List(ctx context.Context, opts repository.SavedListOptions) ([]model.SavedDescription, error) {
	query := `SELECT id, title, content, description_type, category, tags, is_public, created_at, updated_at
	          FROM saved_descriptions`
	var (
		where []string
		args  []any
	)
	if opts.PublicOnly {
		where = append(where, "is_public = 1")
	}
	if opts.Type != "" {
		where = append(where, "description_type = ?")
		args = append(args, string(opts.Type))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing saved descriptions: %w", err)
	}
	defer rows.Close()

	descs := []model.SavedDescription{}
	for rows.Next() {
		desc, err := scanSaved(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning saved description: %w", err)
		}
		descs = append(descs, *desc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating saved descriptions: %w", err)
	}
	return descs, nil
}

// Update replaces the mutable fields of a saved description.
func (s *SavedDescriptionStore) Update(ctx context.Context, desc *model.SavedDescription) error {
	desc.UpdatedAt = time.Now().UTC()

	tags, err := encodeTags(desc.Tags)
	if err != nil {
		return fmt.Errorf("sqlite: encoding tags: %w", err)
	}

	res, err := s.conn.ExecContext(ctx,
		`UPDATE saved_descriptions
		 SET title = ?, content = ?, description_type = ?, category = ?, tags = ?, is_public = ?, updated_at = ?
		 WHERE id = ?`,
		desc.Title,
		desc.Content,
		string(desc.Type),
		desc.Category,
		tags,
		desc.IsPublic,
		desc.UpdatedAt,
		desc.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating saved description: %w", err)
	}
	return requireRow(res, "saved description", desc.ID)
}

// SetPublic flips just the visibility flag.
func (s *SavedDescriptionStore) SetPublic(ctx context.Context, id string, isPublic bool) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE saved_descriptions SET is_public = ?, updated_at = ? WHERE id = ?`,
		isPublic, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("sqlite: setting visibility: %w", err)
	}
	return requireRow(res, "saved description", id)
}

// Delete removes a saved description permanently.
func (s *SavedDescriptionStore) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx,
		`DELETE FROM saved_descriptions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting saved description: %w", err)
	}
	return requireRow(res, "saved description", id)
}

// Count returns the total number of saved descriptions.
func (s *SavedDescriptionStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM saved_descriptions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: counting saved descriptions: %w", err)
	}
	return n, nil
}

func scanSaved(s scanner) (*model.SavedDescription, error) {
	var (
		desc model.SavedDescription
		typ  string
		tags string
	)
	err := s.Scan(
		&desc.ID,
		&desc.Title,
		&desc.Content,
		&typ,
		&desc.Category,
		&tags,
		&desc.IsPublic,
		&desc.CreatedAt,
		&desc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	desc.Type = model.DescriptionType(typ)
	if err := json.Unmarshal([]byte(tags), &desc.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	if desc.Tags == nil {
		desc.Tags = []string{}
	}
	return &desc, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// requireRow converts a zero-row UPDATE/DELETE into a NotFound error.
func requireRow(res sql.Result, resource, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking affected rows: %w", err)
	}
	if n == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
