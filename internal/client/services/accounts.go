// Package services contains the application services of the DuckMail
// client. This file defines the account service: turning a successful
// login into a persisted account record.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"duckmail/internal/client/models"
	"duckmail/internal/client/repositories/accounts"
	"duckmail/internal/dbx"
	"duckmail/internal/logging"
	"duckmail/internal/mailx"
)

// AccountService materializes and reads account records. It satisfies
// authflow.Materializer.
type AccountService struct {
	db  *sql.DB
	log logging.Logger
}

func NewAccountService(db *sql.DB, log logging.Logger) *AccountService {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &AccountService{db: db, log: log}
}

// Materialize merges the server-returned user with the locally computed
// remark (masked email) and the generated alias into an account record,
// persists it in one transaction and returns the assigned index. An
// empty alias is stored as is; a missing alias never fails the call.
func (s *AccountService) Materialize(ctx context.Context, user models.AuthenticatedUser, alias string) (models.AccountRecord, int64, error) {
	record := models.AccountRecord{
		AccessToken:    user.AccessToken,
		Cohort:         user.Cohort,
		Email:          user.Email,
		Username:       user.Username,
		Remark:         mailx.MaskEmail(user.Email),
		NextAlias:      alias,
		TokenExpiresAt: tokenExpiry(user.AccessToken),
		CreatedAt:      time.Now().UTC(),
	}

	var index int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		index, err = accounts.NewSQLiteRepository(tx).Add(ctx, &record)
		return err
	})
	if err != nil {
		return models.AccountRecord{}, 0, fmt.Errorf("account saving error: %w", err)
	}
	record.Index = index

	s.log.Info(ctx, "account created", "index", index, "remark", record.Remark)
	return record, index, nil
}

// Get returns the record stored under the given index.
func (s *AccountService) Get(ctx context.Context, index int64) (*models.AccountRecord, error) {
	return accounts.NewSQLiteRepository(s.db).Get(ctx, index)
}

// List returns all stored accounts ordered by index.
func (s *AccountService) List(ctx context.Context) ([]models.AccountRecord, error) {
	return accounts.NewSQLiteRepository(s.db).List(ctx)
}

// SetNextAlias replaces the stored alias of the account under index.
// Used by the manual alias refresh in the authenticated area.
func (s *AccountService) SetNextAlias(ctx context.Context, index int64, alias string) error {
	return accounts.NewSQLiteRepository(s.db).UpdateAlias(ctx, index, alias)
}

// tokenExpiry extracts the exp claim from the access token without
// verifying its signature; the client has no verification key and the
// value is informational only. Returns the zero time when the token
// cannot be parsed or carries no expiry.
func tokenExpiry(accessToken string) time.Time {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
