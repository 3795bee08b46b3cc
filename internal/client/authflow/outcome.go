package authflow

import (
	"fmt"

	"duckmail/internal/client/api"
)

// OutcomeKind classifies the terminal result of one session operation.
type OutcomeKind int

const (
	// KindInvalidInput: a local validation failure; no call was made and
	// the step did not change.
	KindInvalidInput OutcomeKind = iota

	// KindBusy: a call for this step is already in flight; the
	// submission was ignored.
	KindBusy

	// KindAdvanced: the OTP request succeeded and the flow moved to the
	// passphrase step.
	KindAdvanced

	// KindFailed: a remote call failed; the step did not change and the
	// user may retry.
	KindFailed

	// KindCancelled: the passphrase step was abandoned and the flow is
	// back at the identifier step.
	KindCancelled

	// KindLoggedIn: login succeeded, the account record was persisted,
	// and Target points into the authenticated area.
	KindLoggedIn
)

// Outcome is what the session hands back after each operation; the
// caller (CLI, web, test harness) routes it to a UI action.
type Outcome struct {
	Kind    OutcomeKind
	Message string

	// AccountIndex and Target are set only for KindLoggedIn.
	AccountIndex int64
	Target       string
}

func invalidInput(err error) Outcome {
	return Outcome{Kind: KindInvalidInput, Message: err.Error()}
}

// requestFailureMessage renders an OTP-request failure: status line when
// a status is available, transport message otherwise.
func requestFailureMessage(err error) string {
	if se := api.AsStatusError(err); se != nil {
		return se.Error()
	}
	return err.Error()
}

// loginFailureMessage renders a login failure. 401 is special-cased as a
// bare "Unauthorized"; other statuses keep the "<status> - <text>" form.
func loginFailureMessage(err error) string {
	if se := api.AsStatusError(err); se != nil {
		if se.Code == 401 {
			return "Unauthorized"
		}
		return se.Error()
	}
	return err.Error()
}

// navigationTarget keys the authenticated view by the store index.
func navigationTarget(index int64) string {
	return fmt.Sprintf("account?id=%d", index)
}
