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

// SavePatternBundle inserts or updates a custom pattern bundle.
func (s *SQLiteStorage) SavePatternBundle(ctx context.Context, bundle *model.PatternBundle) error {
	if bundle == nil {
		return fmt.Errorf("bundle cannot be nil")
	}
	if err := bundle.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidPattern, err)
	}
	if bundle.ID == "" {
		bundle.ID = uuid.NewString()
	}

	query := `
		INSERT INTO pattern_bundles (
			id, institution, sender_pattern, amount_pattern,
			merchant_pattern, date_pattern, type_pattern, account_pattern, active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			institution = excluded.institution,
			sender_pattern = excluded.sender_pattern,
			amount_pattern = excluded.amount_pattern,
			merchant_pattern = excluded.merchant_pattern,
			date_pattern = excluded.date_pattern,
			type_pattern = excluded.type_pattern,
			account_pattern = excluded.account_pattern,
			active = excluded.active,
			updated_at = CURRENT_TIMESTAMP`

	_, err := s.db.ExecContext(ctx, query,
		bundle.ID, bundle.Institution, bundle.SenderPattern, bundle.AmountPattern,
		bundle.MerchantPattern, bundle.DatePattern, bundle.TypePattern,
		bundle.AccountPattern, bundle.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to save pattern bundle: %w", err)
	}
	return nil
}

// GetPatternBundle retrieves one bundle by id.
func (s *SQLiteStorage) GetPatternBundle(ctx context.Context, id string) (*model.PatternBundle, error) {
	query := `
		SELECT id, institution, sender_pattern, amount_pattern,
			merchant_pattern, date_pattern, type_pattern, account_pattern, active
		FROM pattern_bundles WHERE id = ?`

	bundle := &model.PatternBundle{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&bundle.ID, &bundle.Institution, &bundle.SenderPattern, &bundle.AmountPattern,
		&bundle.MerchantPattern, &bundle.DatePattern, &bundle.TypePattern,
		&bundle.AccountPattern, &bundle.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pattern bundle %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pattern bundle: %w", err)
	}
	return bundle, nil
}

// ListPatternBundles returns all stored bundles in creation order.
func (s *SQLiteStorage) ListPatternBundles(ctx context.Context) ([]*model.PatternBundle, error) {
	query := `
		SELECT id, institution, sender_pattern, amount_pattern,
			merchant_pattern, date_pattern, type_pattern, account_pattern, active
		FROM pattern_bundles ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pattern bundles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bundles []*model.PatternBundle
	for rows.Next() {
		bundle := &model.PatternBundle{}
		if err := rows.Scan(
			&bundle.ID, &bundle.Institution, &bundle.SenderPattern, &bundle.AmountPattern,
			&bundle.MerchantPattern, &bundle.DatePattern, &bundle.TypePattern,
			&bundle.AccountPattern, &bundle.Active,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pattern bundle: %w", err)
		}
		bundles = append(bundles, bundle)
	}
	return bundles, rows.Err()
}

// DeletePatternBundle removes a stored bundle.
func (s *SQLiteStorage) DeletePatternBundle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM pattern_bundles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pattern bundle: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("pattern bundle %s: %w", id, common.ErrNotFound)
	}
	return nil
}

// SetPatternBundleActive flips a stored bundle's active flag.
func (s *SQLiteStorage) SetPatternBundleActive(ctx context.Context, id string, active bool) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE pattern_bundles SET active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		active, id)
	if err != nil {
		return fmt.Errorf("failed to update pattern bundle: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("pattern bundle %s: %w", id, common.ErrNotFound)
	}
	return nil
}
