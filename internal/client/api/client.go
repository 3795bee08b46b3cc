// Package api defines the client used to talk to the DuckMail backend and
// its error model. The concrete implementation speaks JSON over HTTP; the
// interface exists so the auth flow can be exercised with fakes.
package api

import (
	"context"

	"duckmail/internal/client/models"
)

type Client interface {
	// RequestOTP asks the server to send a one-time passphrase to the
	// address identified by the given local part.
	RequestOTP(ctx context.Context, identifier string) error

	// Login exchanges identifier+otp for an authenticated user.
	Login(ctx context.Context, identifier, otp string) (models.AuthenticatedUser, error)

	// GenerateAlias requests a fresh forwarding address using the access
	// credential obtained from Login.
	GenerateAlias(ctx context.Context, accessToken string) (string, error)

	// Ping checks backend reachability.
	Ping(ctx context.Context) error

	Close() error
}
