package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Products(ctx context.Context) error {
	f.calls = append(f.calls, "products")
	return nil
}
func (f *fakeExec) Categories(ctx context.Context) error {
	f.calls = append(f.calls, "categories")
	return nil
}
func (f *fakeExec) Orders(ctx context.Context) error {
	f.calls = append(f.calls, "orders")
	return nil
}
func (f *fakeExec) Users(ctx context.Context) error {
	f.calls = append(f.calls, "users")
	return nil
}
func (f *fakeExec) Order(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "order")
	f.args = append(f.args, args)
	return nil
}
func (f *fakeExec) Set(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "set")
	f.args = append(f.args, args)
	return nil
}
func (f *fakeExec) AddItem(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "additem")
	f.args = append(f.args, args)
	return nil
}
func (f *fakeExec) Upload(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "upload")
	f.args = append(f.args, args)
	return nil
}
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "delete")
	f.args = append(f.args, args)
	return nil
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"products",
		"orders",
		"order 5",
		"set line 7 quantity 3",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "products", "orders", "order", "set"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}

	last := exec.args[len(exec.args)-1]
	if len(last) != 4 || last[0] != "line" || last[3] != "3" {
		t.Fatalf("set args mismatch: %v", last)
	}
}

func TestRunREPL_UsageLinesDoNotDispatch(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"order",
		"set product 1",
		"additem 1",
		"upload 3",
		"delete product",
		"quit",
	}, "\n"))

	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_ProductsAlias(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("p\nexit\n")
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(input))

	if len(exec.calls) != 1 || exec.calls[0] != "products" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
