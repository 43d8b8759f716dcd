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

// PromptStore implements repository.PromptRepository. The activation
// invariant — at most one active template per prompt type — is enforced here,
// inside transactions, so no interleaving of requests can leave two templates
// of one type active.
type PromptStore struct {
	conn *sql.DB
}

var _ repository.PromptRepository = (*PromptStore)(nil)

// Create inserts a prompt template. When p.IsActive is set, siblings of the
// same prompt type are deactivated in the same transaction.
func (s *PromptStore) Create(ctx context.Context, p *model.PromptTemplate) error {
	p.ID = xid.New().String()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Version == 0 {
		p.Version = 1
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if p.IsActive {
		if _, err := tx.ExecContext(ctx,
			`UPDATE prompts SET is_active = 0 WHERE prompt_type = ?`,
			string(p.PromptType)); err != nil {
			return fmt.Errorf("sqlite: deactivating sibling prompts: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO prompts (id, prompt_type, title, content, is_active, version, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		string(p.PromptType),
		p.Title,
		p.Content,
		p.IsActive,
		p.Version,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating prompt: %w", err)
	}
	return tx.Commit()
}

// GetByID fetches one prompt template.
func (s *PromptStore) GetByID(ctx context.Context, id string) (*model.PromptTemplate, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, prompt_type, title, content, is_active, version, created_at, updated_at
		 FROM prompts WHERE id = ?`, id)

	p, err := scanPrompt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("prompt", id)
		}
		return nil, fmt.Errorf("sqlite: getting prompt: %w", err)
	}
	return p, nil
}

// List returns all prompt templates, newest first.
func (s *PromptStore) List(ctx context.Context) ([]model.PromptTemplate, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, prompt_type, title, content, is_active, version, created_at, updated_at
		 FROM prompts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing prompts: %w", err)
	}
	defer rows.Close()

	prompts := []model.PromptTemplate{}
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning prompt: %w", err)
		}
		prompts = append(prompts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating prompts: %w", err)
	}
	return prompts, nil
}

// Update replaces a template's fields. When the update sets IsActive,
// siblings of the same type are deactivated in the same transaction.
func (s *PromptStore) Update(ctx context.Context, p *model.PromptTemplate) error {
	p.UpdatedAt = time.Now().UTC()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if p.IsActive {
		if _, err := tx.ExecContext(ctx,
			`UPDATE prompts SET is_active = 0 WHERE prompt_type = ? AND id != ?`,
			string(p.PromptType), p.ID); err != nil {
			return fmt.Errorf("sqlite: deactivating sibling prompts: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE prompts SET title = ?, content = ?, is_active = ?, version = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title,
		p.Content,
		p.IsActive,
		p.Version,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating prompt: %w", err)
	}
	if err := requireRow(res, "prompt", p.ID); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a prompt template permanently.
func (s *PromptStore) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM prompts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting prompt: %w", err)
	}
	return requireRow(res, "prompt", id)
}

// GetActive returns the active template for a type, or NotFound when none is.
func (s *PromptStore) GetActive(ctx context.Context, typ model.DescriptionType) (*model.PromptTemplate, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, prompt_type, title, content, is_active, version, created_at, updated_at
		 FROM prompts WHERE prompt_type = ? AND is_active = 1`, string(typ))

	p, err := scanPrompt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("active prompt", string(typ))
		}
		return nil, fmt.Errorf("sqlite: getting active prompt: %w", err)
	}
	return p, nil
}

// Activate makes the template the only active one of its prompt type.
func (s *PromptStore) Activate(ctx context.Context, id string) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var typ string
	err = tx.QueryRowContext(ctx, `SELECT prompt_type FROM prompts WHERE id = ?`, id).Scan(&typ)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound("prompt", id)
	}
	if err != nil {
		return fmt.Errorf("sqlite: looking up prompt type: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE prompts SET is_active = 0 WHERE prompt_type = ?`, typ); err != nil {
		return fmt.Errorf("sqlite: deactivating sibling prompts: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE prompts SET is_active = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id); err != nil {
		return fmt.Errorf("sqlite: activating prompt: %w", err)
	}
	return tx.Commit()
}

func scanPrompt(s scanner) (*model.PromptTemplate, error) {
	var (
		p   model.PromptTemplate
		typ string
	)
	err := s.Scan(
		&p.ID,
		&typ,
		&p.Title,
		&p.Content,
		&p.IsActive,
		&p.Version,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.PromptType = model.DescriptionType(typ)
	return &p, nil
}
