package cli

import (
	"context"
	"fmt"
	"strconv"

	"duckmail/internal/client/models"
)

// Accounts lists the stored account records with their masked remark.
func (a *App) Accounts(ctx context.Context) error {
	records, err := a.accounts.List(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No accounts yet")
		return nil
	}
	for i := range records {
		a.printRecord(records[i].Index, &records[i])
	}
	return nil
}

// Show prints one account by index; with no argument it shows the
// active account.
func (a *App) Show(ctx context.Context, arg string) error {
	index := a.activeIndex
	if arg != "" {
		parsed, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			fmt.Fprintln(a.out, "Usage: show <id>")
			return err
		}
		index = parsed
	}
	if index == signedOut {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return nil
	}

	record, err := a.accounts.Get(ctx, index)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	a.printRecord(index, record)
	return nil
}

// Alias requests a fresh forwarding address for the active account.
// Failure is reported but never treated as fatal; the stored alias is
// only replaced on success.
func (a *App) Alias(ctx context.Context) error {
	if !a.isSignedIn() || a.active == nil {
		fmt.Fprintln(a.out, "Sign in first")
		return nil
	}

	alias, err := a.api.GenerateAlias(ctx, a.active.AccessToken)
	if err != nil {
		a.log.Warn(ctx, "alias generation failed", "index", a.activeIndex, "error", err)
		fmt.Fprintln(a.out, "Could not get a new alias, try again later")
		return nil
	}

	if err := a.accounts.SetNextAlias(ctx, a.activeIndex, alias); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	a.active.NextAlias = alias
	fmt.Fprintln(a.out, "Next alias:", alias)
	return nil
}

// Logout drops the active account and returns the flow to the
// identifier step. The stored record stays in the local database.
func (a *App) Logout(ctx context.Context) error {
	a.activeIndex = signedOut
	a.active = nil
	a.session.CancelOTP()
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) printRecord(index int64, record *models.AccountRecord) {
	alias := record.NextAlias
	if alias == "" {
		alias = "(none)"
	}
	line := fmt.Sprintf("[%d] %s  alias: %s", index, record.Remark, alias)
	if !record.TokenExpiresAt.IsZero() {
		line += "  token expires: " + record.TokenExpiresAt.Format("2006-01-02 15:04")
	}
	fmt.Fprintln(a.out, line)
}
