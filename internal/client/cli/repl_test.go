package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	signedIn bool

	calls []string
	arg   string
}

func (f *fakeExec) isSignedIn() bool { return f.signedIn }
func (f *fakeExec) SignIn(ctx context.Context) error {
	f.calls = append(f.calls, "signin")
	f.signedIn = true
	return nil
}
func (f *fakeExec) Accounts(ctx context.Context) error {
	f.calls = append(f.calls, "accounts")
	return nil
}
func (f *fakeExec) Show(ctx context.Context, arg string) error {
	f.calls = append(f.calls, "show")
	f.arg = arg
	return nil
}
func (f *fakeExec) Alias(ctx context.Context) error {
	f.calls = append(f.calls, "alias")
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.signedIn = false
	return nil
}

func muteOutput(t *testing.T) {
	t.Helper()
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })
}

func TestRunREPL_SignInFlowAndCommands(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"signin",
		"help",
		"accounts",
		"show 2",
		"alias",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	want := []string{"signin", "accounts", "show", "alias", "logout"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i, c := range want {
		if exec.calls[i] != c {
			t.Fatalf("call %d: got %q, want %q (all: %v)", i, exec.calls[i], c, exec.calls)
		}
	}
	if exec.arg != "2" {
		t.Fatalf("show arg: got %q, want %q", exec.arg, "2")
	}
}

func TestRunREPL_QuitAndEOF(t *testing.T) {
	muteOutput(t)

	exec := &fakeExec{signedIn: true}
	runREPL(context.Background(), exec, func() string { return "" },
		bufio.NewScanner(strings.NewReader("quit\n")))
	if len(exec.calls) != 0 {
		t.Fatalf("quit must not dispatch: %v", exec.calls)
	}

	// EOF without exit terminates the loop too.
	runREPL(context.Background(), exec, func() string { return "" },
		bufio.NewScanner(strings.NewReader("")))
}

func TestRunREPL_BlankLinesIgnored(t *testing.T) {
	muteOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" },
		bufio.NewScanner(strings.NewReader("\n   \nexit\n")))
	if len(exec.calls) != 0 {
		t.Fatalf("blank lines must not dispatch: %v", exec.calls)
	}
}
