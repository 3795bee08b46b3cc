// Package models defines the client-side data model: the transient user
// returned by a successful login and the persisted account record.
package models

import "time"

// AuthenticatedUser is the server-issued result of a successful login.
// It is held only transiently by the session and passed by value into
// the account service.
type AuthenticatedUser struct {
	AccessToken string `json:"access_token"`
	Cohort      string `json:"cohort"`
	Email       string `json:"email"`
	Username    string `json:"username"`
}

// AccountRecord is the persisted unit: the authenticated user plus the
// masked-email remark and the next forwarding alias. NextAlias may be
// empty when alias generation failed; that is not an error state.
// Records are created exactly once per successful login and never
// mutated by the flow afterwards.
type AccountRecord struct {
	// Index is assigned by the store at creation and populated on reads;
	// it keys the authenticated view.
	Index int64

	AccessToken string
	Cohort      string
	Email       string
	Username    string

	// Remark is the display-safe masked form of Email.
	Remark string

	// NextAlias is the generated forwarding address, or "" when the
	// alias call failed.
	NextAlias string

	// TokenExpiresAt is extracted best-effort from the access token's
	// claims; zero when the token carries no usable expiry.
	TokenExpiresAt time.Time

	CreatedAt time.Time
}
