package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nmehta6/paisatrail/internal/common"
	"github.com/nmehta6/paisatrail/internal/model"
)

// SaveAccountMapping inserts or updates an account mapping.
func (s *SQLiteStorage) SaveAccountMapping(ctx context.Context, mapping *model.AccountMapping) error {
	if mapping == nil {
		return fmt.Errorf("mapping cannot be nil")
	}
	if err := mapping.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidMapping, err)
	}
	if mapping.ID == "" {
		mapping.ID = uuid.NewString()
	}

	query := `
		INSERT INTO account_mappings (id, account_id, institution, identifier, active)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			account_id = excluded.account_id,
			institution = excluded.institution,
			identifier = excluded.identifier,
			active = excluded.active`

	_, err := s.db.ExecContext(ctx, query,
		mapping.ID, mapping.AccountID, mapping.Institution, mapping.Identifier, mapping.Active)
	if err != nil {
		return fmt.Errorf("failed to save account mapping: %w", err)
	}
	return nil
}

// GetAccountMapping retrieves one mapping by id.
func (s *SQLiteStorage) GetAccountMapping(ctx context.Context, id string) (*model.AccountMapping, error) {
	query := `SELECT id, account_id, institution, identifier, active FROM account_mappings WHERE id = ?`

	mapping := &model.AccountMapping{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&mapping.ID, &mapping.AccountID, &mapping.Institution, &mapping.Identifier, &mapping.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account mapping %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account mapping: %w", err)
	}
	return mapping, nil
}

// ListAccountMappings returns all stored mappings in creation order.
func (s *SQLiteStorage) ListAccountMappings(ctx context.Context) ([]*model.AccountMapping, error) {
	query := `SELECT id, account_id, institution, identifier, active FROM account_mappings ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list account mappings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var mappings []*model.AccountMapping
	for rows.Next() {
		mapping := &model.AccountMapping{}
		if err := rows.Scan(
			&mapping.ID, &mapping.AccountID, &mapping.Institution,
			&mapping.Identifier, &mapping.Active,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account mapping: %w", err)
		}
		mappings = append(mappings, mapping)
	}
	return mappings, rows.Err()
}

// DeleteAccountMapping removes a stored mapping.
func (s *SQLiteStorage) DeleteAccountMapping(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM account_mappings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account mapping: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("account mapping %s: %w", id, common.ErrNotFound)
	}
	return nil
}
