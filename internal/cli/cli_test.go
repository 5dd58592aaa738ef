package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/observability"
)

// run executes the command line args against a fresh CLI with an isolated
// config and cache, and returns its output and log.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	defer observability.Reset()

	var out, logs bytes.Buffer
	c := New(&logs, log.InfoLevel)
	c.SetOutput(&out)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()
	want := []string{"render", "preview", "check", "init", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestInitAndRender(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "structure.xlsx")

	out, _, err := run(t, "init", input)
	if err != nil {
		t.Fatalf("init error = %v", err)
	}
	if !strings.Contains(out, "Wrote "+input) {
		t.Errorf("init output = %q", out)
	}

	outDir := filepath.Join(dir, "out")
	out, _, err = run(t, "render", input, "-f", "md,html", "-o", outDir)
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	for _, name := range []string{"structure_TLF.md", "structure_TLF.html"} {
		path := filepath.Join(outDir, name)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
		if !strings.Contains(out, path) {
			t.Errorf("render output should list %s:\n%s", path, out)
		}
	}
	if !strings.Contains(out, "Rendered 6 tables") {
		t.Errorf("render output = %q", out)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	input := filepath.Join(t.TempDir(), "structure.yaml")
	if _, _, err := run(t, "init", input); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, "init", input); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("second init error = %v, want %s", err, errors.ErrCodeInvalidPath)
	}
}

func TestRenderDefaultsFromConfig(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "structure.yaml")
	if _, _, err := run(t, "init", input); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(dir, "config.toml")
	os.WriteFile(cfg, []byte("formats = [\"csv\"]\n[cache]\nbackend = \"none\"\n"), 0o644)

	if _, _, err := run(t, "--config", cfg, "render", input); err != nil {
		t.Fatalf("render error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "structure_TLF.csv")); err != nil {
		t.Errorf("config format not used: %v", err)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"render", "nope.xlsx"}, errors.ErrCodeFileNotFound},
		{"bad format", []string{"render", "nope.xlsx", "-f", "pdf"}, errors.ErrCodeInvalidFormat},
		{"bad template source", []string{"render", "nope.xlsx", "--cell-template-from", "z"}, errors.ErrCodeInvalidInput},
		{"unknown input type", []string{"check", "structure.csv"}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	input := filepath.Join(t.TempDir(), "structure.yaml")
	if _, _, err := run(t, "init", input); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "preview", input)
	if err != nil {
		t.Fatalf("preview error = %v", err)
	}
	for _, want := range []string{"Demographics", "Safety", "Table 1:", "Baseline measurements by treatment"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview output missing %q", want)
		}
	}
}

func TestCheck(t *testing.T) {
	input := filepath.Join(t.TempDir(), "structure.xlsx")
	if _, _, err := run(t, "init", input); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "check", input)
	if err != nil {
		t.Fatalf("check error = %v", err)
	}
	for _, want := range []string{"is valid", "Demographics", "4 tables", "2 tables"} {
		if !strings.Contains(out, want) {
			t.Errorf("check output missing %q:\n%s", want, out)
		}
	}
}

func TestVerboseRegistersLogHooks(t *testing.T) {
	input := filepath.Join(t.TempDir(), "structure.yaml")
	if _, _, err := run(t, "init", input); err != nil {
		t.Fatal(err)
	}
	_, logs, err := run(t, "-v", "check", input)
	if err != nil {
		t.Fatalf("check error = %v", err)
	}
	if !strings.Contains(logs, "load done") || !strings.Contains(logs, "resolve done") {
		t.Errorf("verbose log missing pipeline events:\n%s", logs)
	}
}

func TestCachePath(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	os.WriteFile(cfg, []byte("[cache]\ndir = \""+filepath.ToSlash(dir)+"/artifacts\"\n"), 0o644)

	out, _, err := run(t, "--config", cfg, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error = %v", err)
	}
	if got := strings.TrimSpace(out); got != filepath.ToSlash(dir)+"/artifacts" {
		t.Errorf("cache path = %q", got)
	}
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "structure.yaml")
	if _, _, err := run(t, "init", input); err != nil {
		t.Fatal(err)
	}
	cacheDir := filepath.Join(dir, "cache")
	cfg := filepath.Join(dir, "config.toml")
	os.WriteFile(cfg, []byte("formats = [\"md\"]\n[cache]\ndir = \""+filepath.ToSlash(cacheDir)+"\"\n"), 0o644)

	if _, _, err := run(t, "--config", cfg, "render", input); err != nil {
		t.Fatalf("render error = %v", err)
	}
	if entries, _ := os.ReadDir(cacheDir); len(entries) == 0 {
		t.Fatal("render should populate the cache")
	}
	if _, _, err := run(t, "--config", cfg, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	if entries, _ := os.ReadDir(cacheDir); len(entries) != 0 {
		t.Errorf("cache clear left %d entries", len(entries))
	}
}

func TestCompletion(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error = %v", err)
	}
	if !strings.Contains(out, "tlfs") {
		t.Error("bash completion should mention the command name")
	}
	if _, _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("unknown shell should fail")
	}
}

func TestReportError(t *testing.T) {
	var logs bytes.Buffer
	c := New(&logs, log.InfoLevel)
	c.ReportError(errors.New(errors.ErrCodeInvalidCategory, `"Sex" needs at least 2 groups`))
	got := logs.String()
	if !strings.Contains(got, `"Sex" needs at least 2 groups`) || !strings.Contains(got, "INVALID_CATEGORY") {
		t.Errorf("ReportError output = %q", got)
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 tables"},
		{1, "1 table"},
		{6, "6 tables"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, "table"); got != tt.want {
			t.Errorf("plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
