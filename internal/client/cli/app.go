// Package cli is the interactive terminal frontend of the DuckMail
// client. It owns the single session instance and routes flow outcomes
// to terminal actions.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	"duckmail/internal/client/api"
	"duckmail/internal/client/authflow"
	"duckmail/internal/client/config"
	"duckmail/internal/client/models"
	"duckmail/internal/client/services"
	"duckmail/internal/client/store"
	"duckmail/internal/logging"
)

const signedOut int64 = -1

type App struct {
	config   *config.Config
	api      api.Client
	accounts *services.AccountService
	session  *authflow.Session
	log      logging.Logger

	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer

	online      atomic.Bool
	activeIndex int64
	active      *models.AccountRecord
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	db, err := store.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(cfg.ServerEndpointAddr, cfg.RequestTimeout, log)
	accountService := services.NewAccountService(db, log)

	validator, err := authflow.NewValidator(cfg.IdentifierPattern)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	session := authflow.NewSession(apiClient, accountService, validator, log)

	return &App{
		config:      cfg,
		api:         apiClient,
		accounts:    accountService,
		session:     session,
		log:         log,
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		activeIndex: signedOut,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	fmt.Fprintln(a.out, "Welcome to DuckMail CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) Close() {
	_ = a.api.Close()
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isSignedIn() bool {
	return a.activeIndex != signedOut
}

func (a *App) getStatus() string {
	s := ""
	if a.active != nil {
		s = a.active.Remark + " "
	}
	if a.online.Load() {
		s += "online"
	} else {
		s += "offline"
	}
	return fmt.Sprintf("(%s)", s)
}

// StartOnlineStatusWatcher periodically probes the backend and flips the
// online indicator shown in the prompt. Each probe retries a couple of
// times with a constant backoff before declaring the server unreachable.
// Cosmetic only: the sign-in flow never consults the indicator.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := retry.Do(probeCtx, retry.WithMaxRetries(2, retry.NewConstant(300*time.Millisecond)),
				func(ctx context.Context) error {
					if err := a.api.Ping(ctx); err != nil {
						return retry.RetryableError(err)
					}
					return nil
				})
			cancel()

			if online := err == nil; a.online.Swap(online) != online {
				a.log.Info(ctx, "connectivity changed", "online", online)
			}

		case <-ctx.Done():
			return
		}
	}
}
