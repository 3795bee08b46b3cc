package authflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"duckmail/internal/client/api"
	"duckmail/internal/client/models"
	"duckmail/internal/logging"
)

// Step identifies which part of the sign-in flow is active.
type Step int

const (
	StepEnterIdentifier Step = iota
	StepEnterOTP
)

func (s Step) String() string {
	switch s {
	case StepEnterIdentifier:
		return "enter-identifier"
	case StepEnterOTP:
		return "enter-otp"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Materializer turns a successful login into a persisted account record
// and returns the store index used to key the authenticated view.
type Materializer interface {
	Materialize(ctx context.Context, user models.AuthenticatedUser, alias string) (models.AccountRecord, int64, error)
}

// Session is the sign-in state machine. It starts at StepEnterIdentifier,
// moves forward to StepEnterOTP only on OTP-request success and backward
// only on explicit cancellation; a login failure keeps the passphrase
// step active so the user can retry.
//
// The busy flag is the sole concurrency guard: while a call for the
// current step is outstanding, further submissions for that step are
// rejected with KindBusy. A Session is owned by whichever component
// drives the interaction; it shares no state beyond its own fields.
type Session struct {
	api       api.Client
	accounts  Materializer
	validator *Validator
	log       logging.Logger

	mu         sync.Mutex
	step       Step
	identifier string
	otp        string
	busy       bool
}

func NewSession(apiClient api.Client, accounts Materializer, validator *Validator, log logging.Logger) *Session {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Session{
		api:       apiClient,
		accounts:  accounts,
		validator: validator,
		log:       log,
		step:      StepEnterIdentifier,
	}
}

// Step reports the active step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Busy reports whether a call for the current step is outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Identifier returns the identifier held by the session. It is frozen
// once an OTP has been requested for it.
func (s *Session) Identifier() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identifier
}

// SubmitIdentifier validates the identifier and, if it passes, requests
// an OTP for it. On success the flow advances to StepEnterOTP. On
// validation failure no call is made. The busy flag is set for the
// duration of the call and cleared regardless of its outcome.
func (s *Session) SubmitIdentifier(ctx context.Context, identifier string) Outcome {
	s.mu.Lock()
	if s.step != StepEnterIdentifier {
		s.mu.Unlock()
		return invalidInput(errors.New("identifier already submitted; cancel first"))
	}
	if s.busy {
		s.mu.Unlock()
		return Outcome{Kind: KindBusy, Message: "a request is already in flight"}
	}
	if err := s.validator.ValidateIdentifier(identifier); err != nil {
		s.mu.Unlock()
		return invalidInput(err)
	}
	s.identifier = identifier
	s.busy = true
	s.mu.Unlock()

	err := s.api.RequestOTP(ctx, identifier)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if err != nil {
		s.log.Error(ctx, "otp request failed", "identifier", identifier, "error", err)
		return Outcome{Kind: KindFailed, Message: requestFailureMessage(err)}
	}

	s.step = StepEnterOTP
	s.log.Info(ctx, "otp requested", "identifier", identifier)
	return Outcome{Kind: KindAdvanced, Message: "One-time passphrase sent"}
}

// SubmitOTP trims and submits the passphrase for the previously accepted
// identifier. On login success it requests an alias (failure there is
// absorbed), persists the account record and reports KindLoggedIn with
// the store index; the busy flag is cleared only after the alias step
// has settled. On login failure the passphrase step stays active.
func (s *Session) SubmitOTP(ctx context.Context, otp string) Outcome {
	s.mu.Lock()
	if s.step != StepEnterOTP {
		s.mu.Unlock()
		return invalidInput(errors.New("no identifier submitted yet"))
	}
	if s.busy {
		s.mu.Unlock()
		return Outcome{Kind: KindBusy, Message: "a request is already in flight"}
	}
	trimmed := strings.TrimSpace(otp)
	if trimmed == "" {
		s.mu.Unlock()
		return invalidInput(ErrEmptyOTP)
	}
	identifier := s.identifier
	s.otp = trimmed
	s.busy = true
	s.mu.Unlock()

	user, err := s.api.Login(ctx, identifier, trimmed)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.busy = false
		s.log.Error(ctx, "login failed", "identifier", identifier, "error", err)
		return Outcome{Kind: KindFailed, Message: loginFailureMessage(err)}
	}

	// Alias generation is best-effort: its failure degrades the record
	// to an empty alias but never blocks account creation or navigation.
	alias, aliasErr := s.api.GenerateAlias(ctx, user.AccessToken)
	if aliasErr != nil {
		s.log.Warn(ctx, "alias generation failed", "identifier", identifier, "error", aliasErr)
		alias = ""
	}

	record, index, err := s.accounts.Materialize(ctx, user, alias)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.busy = false
		s.log.Error(ctx, "account persistence failed", "identifier", identifier, "error", err)
		return Outcome{Kind: KindFailed, Message: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	s.otp = ""
	s.log.Info(ctx, "login succeeded", "identifier", identifier, "index", index)
	return Outcome{
		Kind:         KindLoggedIn,
		Message:      fmt.Sprintf("Signed in as %s", record.Email),
		AccountIndex: index,
		Target:       navigationTarget(index),
	}
}

// CancelOTP abandons the passphrase step: the OTP value is cleared and
// the flow returns to StepEnterIdentifier. Idempotent, no network call.
func (s *Session) CancelOTP() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otp = ""
	s.step = StepEnterIdentifier
	return Outcome{Kind: KindCancelled}
}
