package cli

import (
	"context"
	"fmt"
	"strings"

	"duckmail/internal/client/authflow"
	"duckmail/internal/mailx"
)

// SignIn drives the two-step flow: identifier, then the one-time
// passphrase. A failed passphrase keeps prompting (the flow stays at the
// passphrase step); an empty passphrase cancels back to the start.
func (a *App) SignIn(ctx context.Context) error {
	if a.isSignedIn() {
		fmt.Fprintln(a.out, "Already signed in; logout first")
		return nil
	}

	identifier, err := GetSimpleText(a.reader,
		fmt.Sprintf("Enter your address (without @%s)", a.config.AddressDomain), a.out)
	if err != nil {
		return err
	}

	out := a.session.SubmitIdentifier(ctx, identifier)
	a.route(ctx, out)
	if out.Kind != authflow.KindAdvanced {
		return nil
	}

	for {
		otp, err := GetSecret("One-time passphrase (empty to cancel)", a.out)
		if err != nil {
			a.session.CancelOTP()
			return err
		}
		if strings.TrimSpace(otp) == "" {
			a.route(ctx, a.session.CancelOTP())
			return nil
		}

		out = a.session.SubmitOTP(ctx, otp)
		a.route(ctx, out)
		if out.Kind == authflow.KindLoggedIn {
			return nil
		}
		// Failed or invalid: the passphrase step is still active, retry.
	}
}

// route maps a flow outcome to its terminal action: show the message,
// or on login success make the stored account active and open the
// authenticated view keyed by the returned index.
func (a *App) route(ctx context.Context, out authflow.Outcome) {
	switch out.Kind {
	case authflow.KindInvalidInput, authflow.KindFailed, authflow.KindBusy:
		fmt.Fprintln(a.out, "Error:", out.Message)

	case authflow.KindAdvanced:
		fmt.Fprintf(a.out, "%s to %s\n", out.Message,
			mailx.FullAddress(a.session.Identifier(), a.config.AddressDomain))

	case authflow.KindCancelled:
		fmt.Fprintln(a.out, "Sign-in cancelled")

	case authflow.KindLoggedIn:
		a.openAccount(ctx, out)
	}
}

func (a *App) openAccount(ctx context.Context, out authflow.Outcome) {
	record, err := a.accounts.Get(ctx, out.AccountIndex)
	if err != nil {
		// The record was written moments ago; failing to read it back is
		// diagnostic-worthy but must not undo the successful login.
		a.log.Error(ctx, "failed to load account", "index", out.AccountIndex, "error", err)
	}
	a.activeIndex = out.AccountIndex
	a.active = record

	fmt.Fprintln(a.out, out.Message)
	fmt.Fprintf(a.out, "Opening %s\n", out.Target)
	if record != nil {
		a.printRecord(out.AccountIndex, record)
	}
}
