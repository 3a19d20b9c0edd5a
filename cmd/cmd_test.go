package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
	"github.com/etnz/tracker/store"
	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
)

// setup points the global flags to a fresh directory storage for user
// alice and captures the output.
func setup(t *testing.T) *bytes.Buffer {
	t.Helper()
	data, storage, user, config, raw := *dataPath, *storageKind, *userName, *configFile, *rawOutput
	out, errOut := stdout, stderr
	t.Cleanup(func() {
		*dataPath, *storageKind, *userName, *configFile, *rawOutput = data, storage, user, config, raw
		stdout, stderr = out, errOut
	})
	*dataPath, *storageKind, *userName, *configFile, *rawOutput = t.TempDir(), "dir", "alice", "", true
	var b bytes.Buffer
	stdout, stderr = &b, &b
	return &b
}

// mtk runs a command line like the mtk binary does.
func mtk(t *testing.T, args ...string) subcommands.ExitStatus {
	t.Helper()
	top := flag.NewFlagSet("mtk", flag.ContinueOnError)
	c := subcommands.NewCommander(top, "mtk")
	Register(c)
	if err := top.Parse(args); err != nil {
		t.Fatal(err)
	}
	return c.Execute(context.Background())
}

func mustRun(t *testing.T, out *bytes.Buffer, args ...string) string {
	t.Helper()
	out.Reset()
	if status := mtk(t, args...); status != subcommands.ExitSuccess {
		t.Fatalf("mtk %s = %v\n%s", strings.Join(args, " "), status, out)
	}
	return out.String()
}

func mustFail(t *testing.T, out *bytes.Buffer, want subcommands.ExitStatus, args ...string) {
	t.Helper()
	out.Reset()
	if status := mtk(t, args...); status != want {
		t.Errorf("mtk %s = %v, want %v\n%s", strings.Join(args, " "), status, want, out)
	}
}

// book opens the book of user in the storage of the current test.
func book(t *testing.T, user string) *tracker.Book {
	t.Helper()
	d, err := store.OpenDir(*dataPath)
	if err != nil {
		t.Fatal(err)
	}
	return tracker.Open(store.New(d), store.Session{User: user})
}

func balances(t *testing.T, b *tracker.Book) map[string]string {
	t.Helper()
	accounts, err := b.Accounts()
	if err != nil {
		t.Fatal(err)
	}
	m := map[string]string{}
	for _, a := range accounts {
		m[a.Name] = a.Balance.String()
	}
	return m
}

func TestWorkflow(t *testing.T) {
	out := setup(t)

	mustFail(t, out, subcommands.ExitFailure, "accounts")
	mustRun(t, out, "init")
	mustFail(t, out, subcommands.ExitFailure, "init")

	mustRun(t, out, "add-account", "-name", "Savings", "-balance", "500")
	mustRun(t, out, "add-tx", "-amount", "12.5*2", "-category", "food", "-account", "cash", "-desc", "Lunch")
	mustFail(t, out, subcommands.ExitUsageError, "add-tx", "-amount", "3", "-category", "food")
	mustFail(t, out, subcommands.ExitFailure, "add-tx", "-type", "income", "-amount", "3", "-category", "food", "-account", "cash")
	mustRun(t, out, "transfer", "-from", "Savings", "-to", "Cash", "-amount", "100")
	mustFail(t, out, subcommands.ExitFailure, "transfer", "-from", "Savings", "-to", "Cash", "-amount", "1000")

	b := book(t, "alice")
	want := map[string]string{"Cash": "75.00", "Bank Account": "0.00", "Savings": "400.00"}
	if diff := cmp.Diff(want, balances(t, b)); diff != "" {
		t.Errorf("balances mismatch (-want +got):\n%s", diff)
	}

	if got := mustRun(t, out, "tx", "-type", "expense", "-q", "lunch"); !strings.Contains(got, "Lunch") {
		t.Errorf("mtk tx -type expense -q lunch =\n%s", got)
	}
	lunch, err := b.Transactions(tracker.Matching("Lunch"))
	if err != nil || len(lunch) != 1 {
		t.Fatalf("Transactions(Lunch) = %v, %v", lunch, err)
	}
	mustRun(t, out, "edit-tx", "-amount", "30", lunch[0].ID)
	if got := balances(t, b)["Cash"]; got != "70.00" {
		t.Errorf("Cash after edit-tx = %s, want 70.00", got)
	}
	transfers, _ := b.Transactions(func(tx tracker.Transaction) bool { return tx.IsTransfer() })
	mustFail(t, out, subcommands.ExitFailure, "edit-tx", "-amount", "1", transfers[0].ID)
	mustFail(t, out, subcommands.ExitFailure, "rm-account", "Savings")

	mustRun(t, out, "add-budget", "-category", "Food", "-amount", "100", "-start", "2024-01-01", "-end", "2024-01-31")
	mustFail(t, out, subcommands.ExitFailure, "add-budget", "-category", "Food", "-amount", "50", "-start", "2024-01-15", "-end", "2024-02-15")
	if got := mustRun(t, out, "budgets", "-month", "2024-01"); !strings.Contains(got, "# Budgets 2024-01") || !strings.Contains(got, "$100.00") {
		t.Errorf("mtk budgets =\n%s", got)
	}

	mustRun(t, out, "add-item", "-name", "Shoes", "-amount", "60", "-category", "Shopping", "-account", "Cash", "-priority", "high")
	if got := mustRun(t, out, "shop"); !strings.Contains(got, "Shoes") || !strings.Contains(got, "Planned: $60.00.") {
		t.Errorf("mtk shop =\n%s", got)
	}
	items, _ := b.ShoppingList(tracker.ByPriority)
	mustRun(t, out, "buy-item", "-amount", "55", items[0].ID)
	if got := balances(t, b)["Cash"]; got != "15.00" {
		t.Errorf("Cash after buy-item = %s, want 15.00", got)
	}
	if got := mustRun(t, out, "shop"); !strings.Contains(got, "The shopping list is empty.") {
		t.Errorf("mtk shop after buy-item =\n%s", got)
	}

	mustRun(t, out, "add-debt", "-type", "loan", "-person", "Bob", "-amount", "20")
	if got := mustRun(t, out, "debts"); !strings.Contains(got, "Bob") {
		t.Errorf("mtk debts =\n%s", got)
	}

	if got := mustRun(t, out, "report", "-p", "year"); !strings.Contains(got, "$85.00") {
		t.Errorf("mtk report -p year does not show expenses of $85.00:\n%s", got)
	}
	mustRun(t, out, "dashboard")
	if got := mustRun(t, out, "audit"); !strings.Contains(got, "No inconsistency found.") {
		t.Errorf("mtk audit =\n%s", got)
	}

	if got := mustRun(t, out, "settings", "-currency", "euros", "-theme", "dark"); !strings.Contains(got, "Currency: Euros") {
		t.Errorf("mtk settings =\n%s", got)
	}
	if got := mustRun(t, out, "accounts"); !strings.Contains(got, "€400.00") {
		t.Errorf("mtk accounts in euros =\n%s", got)
	}
	mustFail(t, out, subcommands.ExitFailure, "settings", "-theme", "neon")

	mustRun(t, out, "profile", "-email", "alice@example.com")
	if got := mustRun(t, out, "profile"); !strings.Contains(got, "- Email: alice@example.com") {
		t.Errorf("mtk profile =\n%s", got)
	}

	mustFail(t, out, subcommands.ExitUsageError, "reset")
	mustRun(t, out, "reset", "-yes")
	if got := balances(t, b); len(got) != 2 {
		t.Errorf("accounts after reset = %v", got)
	}
}

func TestExportImport(t *testing.T) {
	out := setup(t)
	mustRun(t, out, "init")
	mustRun(t, out, "add-account", "-name", "Savings", "-balance", "250")
	mustRun(t, out, "add-tx", "-type", "income", "-amount", "1000", "-category", "Salary", "-account", "Bank Account", "-d", "2024-01-05")

	file := filepath.Join(t.TempDir(), "book.json")
	mustRun(t, out, "export", "-o", file)

	*userName = "bob"
	mustFail(t, out, subcommands.ExitFailure, "import", filepath.Join(t.TempDir(), "missing.json"))
	mustRun(t, out, "import", file)
	if diff := cmp.Diff(balances(t, book(t, "alice")), balances(t, book(t, "bob"))); diff != "" {
		t.Errorf("imported balances mismatch (-alice +bob):\n%s", diff)
	}
	if got := mustRun(t, out, "audit"); !strings.Contains(got, "No inconsistency found.") {
		t.Errorf("mtk audit after import =\n%s", got)
	}
	if got := mustRun(t, out, "users"); !strings.Contains(got, "- alice (since") || !strings.Contains(got, "- bob (not registered)") {
		t.Errorf("mtk users =\n%s", got)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"accounts": []}`), 0644); err != nil {
		t.Fatal(err)
	}
	mustFail(t, out, subcommands.ExitFailure, "import", bad)
	if got := balances(t, book(t, "bob")); got["Savings"] != "250.00" {
		t.Errorf("failed import changed the book: %v", got)
	}
}

func TestLoadConfig(t *testing.T) {
	for _, k := range []string{"MTK_STORAGE", "MTK_DATA", "MTK_USER", "MTK_CURRENCY"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	missingEnv := filepath.Join(dir, "missing.env")

	got, err := loadConfig("", missingEnv, Config{})
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if diff := cmp.Diff(Config{Storage: "dir", Data: ".mtk"}, got); diff != "" {
		t.Errorf("default config mismatch (-want +got):\n%s", diff)
	}

	path := filepath.Join(dir, "mtk.toml")
	toml := "storage = \"sqlite\"\ndata = \"books.db\"\ncurrency = \"kwanza\"\n"
	if err := os.WriteFile(path, []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MTK_USER", "carol")
	got, err = loadConfig(path, missingEnv, Config{Data: "other.db"})
	if err != nil {
		t.Fatalf("loadConfig(%s) error = %v", path, err)
	}
	want := Config{Storage: "sqlite", Data: "other.db", User: "carol", Currency: "kwanza"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	// .env values come before the config file
	env := filepath.Join(dir, ".env")
	if err := os.WriteFile(env, []byte("MTK_CURRENCY=reais\n"), 0644); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv("MTK_CURRENCY")
	got, err = loadConfig(path, env, Config{})
	if err != nil {
		t.Fatalf("loadConfig() with .env error = %v", err)
	}
	if got.Currency != "reais" {
		t.Errorf("currency = %q, want reais from .env", got.Currency)
	}

	if _, err := loadConfig(filepath.Join(dir, "nope.toml"), missingEnv, Config{}); err == nil {
		t.Errorf("loadConfig() of a missing explicit file succeeded")
	}
}

func TestOpenStorage(t *testing.T) {
	dir := t.TempDir()
	for _, kind := range []string{"dir", "sqlite", "memory"} {
		s, closer, err := openStorage(Config{Storage: kind, Data: filepath.Join(dir, kind)})
		if err != nil {
			if kind == "sqlite" {
				t.Logf("sqlite unavailable: %v", err)
				continue
			}
			t.Fatalf("openStorage(%s) error = %v", kind, err)
		}
		if err := s.Set("k", []byte("v")); err != nil {
			t.Errorf("%s: Set() error = %v", kind, err)
		}
		if err := closer(); err != nil {
			t.Errorf("%s: close error = %v", kind, err)
		}
	}
	if _, _, err := openStorage(Config{Storage: "cloud"}); err == nil {
		t.Errorf("openStorage(cloud) succeeded")
	}
}

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"12.5", "12.50"},
		{" 7 ", "7.00"},
		{"19.99*3", "59.97"},
		{"(10+5)/4", "3.75"},
		{"1/3", "0.33"},
		{"100-0.01", "99.99"},
	}
	for _, tc := range testCases {
		got, err := parseAmount(tc.in)
		if err != nil {
			t.Errorf("parseAmount(%q) error = %v", tc.in, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("parseAmount(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
	for _, in := range []string{"", "abc", "2*", "'x'"} {
		if _, err := parseAmount(in); err == nil {
			t.Errorf("parseAmount(%q) succeeded", in)
		}
	}
}

func TestPeriodFlags(t *testing.T) {
	today := date.New(2024, 5, 15)
	testCases := []struct {
		flags  periodFlags
		want   date.Range
		wantOK bool
	}{
		{periodFlags{}, date.Range{}, false},
		{periodFlags{period: "month"}, date.Between(date.New(2024, 5, 1), date.New(2024, 5, 31)), true},
		{periodFlags{period: "year", end: "2023-03-02"}, date.Between(date.New(2023, 1, 1), date.New(2023, 12, 31)), true},
		{periodFlags{period: "month", start: "2024-04-10"}, date.Between(date.New(2024, 4, 10), today), true},
		{periodFlags{end: "2024-02-10"}, date.Between(date.New(2024, 2, 1), date.New(2024, 2, 29)), true},
	}
	for _, tc := range testCases {
		got, ok, err := tc.flags.Range(today)
		if err != nil || ok != tc.wantOK || got != tc.want {
			t.Errorf("%+v.Range() = %v, %v, %v, want %v, %v", tc.flags, got, ok, err, tc.want, tc.wantOK)
		}
	}
	for _, p := range []periodFlags{{period: "fortnight"}, {start: "2024-06-01"}, {end: "soon"}} {
		if _, _, err := p.Range(today); err == nil {
			t.Errorf("%+v.Range() succeeded", p)
		}
	}
}

func TestCompletion(t *testing.T) {
	top := flag.NewFlagSet("mtk", flag.ContinueOnError)
	top.String("storage", "", "")
	top.Bool("v", false, "")
	c := subcommands.NewCommander(top, "mtk")
	Register(c)

	root := Completion(c, top)
	if _, ok := root.Flags["storage"]; !ok {
		t.Errorf("global flag -storage is not completed")
	}
	for name, flags := range map[string][]string{
		"add-tx":   {"amount", "category", "account", "type", "d", "desc", "no-report"},
		"shop":     {"sort"},
		"settings": {"theme", "currency", "picture"},
	} {
		sub, ok := root.Sub[name]
		if !ok {
			t.Errorf("command %s is not completed", name)
			continue
		}
		for _, f := range flags {
			if _, ok := sub.Flags[f]; !ok {
				t.Errorf("flag -%s of %s is not completed", f, name)
			}
		}
	}
	if got := root.Sub["shop"].Flags["sort"].Predict(""); !slices.Contains(got, "priority") {
		t.Errorf("shop -sort predicts %v", got)
	}
	if got := root.Sub["topic"].Args.Predict(""); !slices.Contains(got, "accounts") {
		t.Errorf("topic predicts %v", got)
	}
}

func TestExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in this test")
	}
	out := setup(t)
	dir := t.TempDir()
	script := "#!/bin/sh\necho \"user=$MTK_USER storage=$MTK_STORAGE args=$*\"\nexit 3\n"
	if err := os.WriteFile(filepath.Join(dir, "mtk-hello"), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	found, code := RunExtension("hello", []string{"a", "b"})
	if !found || code != 3 {
		t.Errorf("RunExtension(hello) = %v, %d, want true, 3", found, code)
	}
	if want := "user=alice storage=dir args=a b"; !strings.Contains(out.String(), want) {
		t.Errorf("extension output = %q, want %q", out, want)
	}
	if found, _ := RunExtension("no-such-extension", nil); found {
		t.Errorf("RunExtension(no-such-extension) found an extension")
	}
}
