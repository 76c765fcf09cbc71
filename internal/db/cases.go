package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"callhelper/internal/matching"
	"callhelper/internal/models"
)

// caseColumns is the standard column list for case queries.
const caseColumns = `case_id, user_type, account_status, category, subcategory,
	main_keywords, extra_keywords, synonyms, negative_keywords,
	priority, response_text, why, fallback_text, notes, last_updated`

// scanCase scans a row into a Case struct.
func scanCase(row pgx.Row) (*models.Case, error) {
	var c models.Case
	err := row.Scan(
		&c.CaseID,
		&c.UserType,
		&c.AccountStatus,
		&c.Category,
		&c.SubCategory,
		&c.MainKeywords,
		&c.ExtraKeywords,
		&c.Synonyms,
		&c.NegativeKeywords,
		&c.Priority,
		&c.ResponseText,
		&c.Why,
		&c.FallbackText,
		&c.Notes,
		&c.LastUpdated,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCaseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// scanCases scans multiple rows into a slice of Cases.
func scanCases(rows pgx.Rows) ([]models.Case, error) {
	defer rows.Close()

	var cases []models.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, *c)
	}

	return cases, rows.Err()
}

// nonNil keeps NOT NULL array columns happy when a list is empty.
func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// normalizeKeywords rewrites every keyword list into matching form so stored
// keywords compare equal to normalized queries.
func normalizeKeywords(c *models.Case) {
	c.MainKeywords = matching.NormalizeAll(c.MainKeywords)
	c.ExtraKeywords = matching.NormalizeAll(c.ExtraKeywords)
	c.Synonyms = matching.NormalizeAll(c.Synonyms)
	c.NegativeKeywords = matching.NormalizeAll(c.NegativeKeywords)
}

// FetchAllCases returns the full knowledge base as a matching snapshot.
func (d *DB) FetchAllCases(ctx context.Context) ([]models.Case, error) {
	rows, err := d.Pool.Query(ctx, `SELECT `+caseColumns+` FROM cases ORDER BY case_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cases: %w", err)
	}
	return scanCases(rows)
}

// GetAllCases returns every case sorted by case ID, for the admin list.
func (d *DB) GetAllCases(ctx context.Context) ([]models.Case, error) {
	return d.FetchAllCases(ctx)
}

// GetCaseByID retrieves a case by its ID.
func (d *DB) GetCaseByID(ctx context.Context, caseID string) (*models.Case, error) {
	row := d.Pool.QueryRow(ctx, `SELECT `+caseColumns+` FROM cases WHERE case_id = $1`, caseID)
	return scanCase(row)
}

// CreateCase inserts a new case and stamps last_updated.
// Keyword lists are normalized before they are stored.
func (d *DB) CreateCase(ctx context.Context, c *models.Case) error {
	normalizeKeywords(c)
	query := `
		INSERT INTO cases (case_id, user_type, account_status, category, subcategory,
			main_keywords, extra_keywords, synonyms, negative_keywords,
			priority, response_text, why, fallback_text, notes, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		RETURNING last_updated
	`

	err := d.Pool.QueryRow(ctx, query,
		c.CaseID,
		c.UserType,
		c.AccountStatus,
		c.Category,
		c.SubCategory,
		nonNil(c.MainKeywords),
		nonNil(c.ExtraKeywords),
		nonNil(c.Synonyms),
		nonNil(c.NegativeKeywords),
		c.Priority,
		c.ResponseText,
		c.Why,
		c.FallbackText,
		c.Notes,
	).Scan(&c.LastUpdated)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCaseID
		}
		return err
	}
	return nil
}

// UpdateCase replaces every editable field of an existing case.
// The case ID itself is immutable.
func (d *DB) UpdateCase(ctx context.Context, c *models.Case) error {
	normalizeKeywords(c)
	query := `
		UPDATE cases
		SET user_type = $2, account_status = $3, category = $4, subcategory = $5,
			main_keywords = $6, extra_keywords = $7, synonyms = $8, negative_keywords = $9,
			priority = $10, response_text = $11, why = $12, fallback_text = $13, notes = $14,
			last_updated = NOW()
		WHERE case_id = $1
		RETURNING last_updated
	`

	err := d.Pool.QueryRow(ctx, query,
		c.CaseID,
		c.UserType,
		c.AccountStatus,
		c.Category,
		c.SubCategory,
		nonNil(c.MainKeywords),
		nonNil(c.ExtraKeywords),
		nonNil(c.Synonyms),
		nonNil(c.NegativeKeywords),
		c.Priority,
		c.ResponseText,
		c.Why,
		c.FallbackText,
		c.Notes,
	).Scan(&c.LastUpdated)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCaseNotFound
	}
	return err
}

// DeleteCase removes a case by ID.
func (d *DB) DeleteCase(ctx context.Context, caseID string) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM cases WHERE case_id = $1`, caseID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrCaseNotFound
	}
	return nil
}

// CountCases returns the number of cases in the knowledge base.
func (d *DB) CountCases(ctx context.Context) (int64, error) {
	var n int64
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM cases`).Scan(&n)
	return n, err
}
