package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"duckmail/internal/client/models"
	"duckmail/internal/common"
	"duckmail/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or
// *sql.Tx), so Add can participate in a caller-owned transaction.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Add inserts the record under the next free index, starting at 0.
// The index is computed inside the insert, so callers wanting atomicity
// under concurrent writers should run Add inside dbx.WithTx.
func (r *SQLiteRepository) Add(ctx context.Context, record *models.AccountRecord) (int64, error) {
	var index int64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(idx)+1, 0) FROM accounts`).Scan(&index)
	if err != nil {
		return 0, fmt.Errorf("failed to assign account index: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO accounts (idx, access_token, cohort, email, username, remark, next_alias, token_expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, index, record.AccessToken, record.Cohort, record.Email, record.Username,
		record.Remark, record.NextAlias, nullableTime(record.TokenExpiresAt), record.CreatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to add account: %w", err)
	}
	return index, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, index int64) (*models.AccountRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT idx, access_token, cohort, email, username, remark, next_alias, token_expires_at, created_at
		FROM accounts WHERE idx = ?
	`, index)

	record, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account[%d]: %w", index, err)
	}
	return record, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.AccountRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT idx, access_token, cohort, email, username, remark, next_alias, token_expires_at, created_at
		FROM accounts ORDER BY idx
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var result []models.AccountRecord
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		result = append(result, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account rows: %w", err)
	}
	return result, nil
}

// UpdateAlias replaces the stored next_alias of the record under index.
func (r *SQLiteRepository) UpdateAlias(ctx context.Context, index int64, alias string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET next_alias = ? WHERE idx = ?`, alias, index)
	if err != nil {
		return fmt.Errorf("failed to update account[%d] alias: %w", index, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, index int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE idx = ?`, index)
	if err != nil {
		return fmt.Errorf("failed to delete account[%d]: %w", index, err)
	}
	return nil
}

func scanRecord(scan func(dest ...any) error) (*models.AccountRecord, error) {
	var record models.AccountRecord
	var expires sql.NullTime
	err := scan(&record.Index, &record.AccessToken, &record.Cohort, &record.Email, &record.Username,
		&record.Remark, &record.NextAlias, &expires, &record.CreatedAt)
	if err != nil {
		return nil, err
	}
	if expires.Valid {
		record.TokenExpiresAt = expires.Time
	}
	return &record, nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
