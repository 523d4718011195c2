package workflow

import (
	"context"
	"strings"
	"testing"
	"time"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/oychao1988/content-creator/internal/config"
	"github.com/oychao1988/content-creator/internal/report"
	"github.com/oychao1988/content-creator/internal/runner"
)

// stubRunner records the command lines it receives and replies with a
// canned result, so no child process is ever spawned.
type stubRunner struct {
	commands []string
	exitCode int
	stdout   string
	stderr   string
}

func (s *stubRunner) Run(ctx context.Context, commandLine, cwd string) (*runner.Result, error) {
	s.commands = append(s.commands, commandLine)
	return &runner.Result{
		ID:        "stub-run",
		ExitCode:  s.exitCode,
		Stdout:    []byte(s.stdout),
		Stderr:    []byte(s.stderr),
		StartedAt: time.Now(),
	}, nil
}

func newTestEngine(stub *stubRunner) *Engine {
	return &Engine{
		Config: &config.Config{},
		Runner: stub,
		Root:   "/project",
	}
}

func TestCreate_CommandString(t *testing.T) {
	stub := &stubRunner{stdout: "task created: abc123"}
	e := newTestEngine(stub)

	spec := TaskSpec{
		Topic:        "AI 技术的发展趋势",
		Requirements: "写一篇关于 AI 技术发展趋势的文章",
		Keywords:     "AI,人工智能,技术发展",
		MinWords:     500,
		MaxWords:     1000,
		Mode:         "sync",
	}
	rec, err := e.Create(context.Background(), spec)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	want := `npm run cli:create -- --topic "AI 技术的发展趋势" --requirements "写一篇关于 AI 技术发展趋势的文章" --keywords "AI,人工智能,技术发展" --min-words 500 --max-words 1000 --mode sync`
	if rec.Command != want {
		t.Errorf("Command =\n%s\nwant\n%s", rec.Command, want)
	}
	if rec.Op != report.OpCreate {
		t.Errorf("Op = %q, want %q", rec.Op, report.OpCreate)
	}
}

func TestCreate_TokenizationYieldsOneTokenPerValue(t *testing.T) {
	stub := &stubRunner{}
	e := newTestEngine(stub)

	spec := TaskSpec{
		Topic:        "AI 技术的发展趋势",
		Requirements: "写一篇关于 AI 技术发展趋势的文章",
		Keywords:     "AI,人工智能,技术发展",
		MinWords:     500,
		MaxWords:     1000,
		Mode:         "sync",
	}
	rec, err := e.Create(context.Background(), spec)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	argv, err := shellwords.Parse(rec.Command)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// npm run cli:create -- --topic T --requirements R --keywords K
	// --min-words 500 --max-words 1000 --mode sync
	if len(argv) != 16 {
		t.Fatalf("len(argv) = %d, want 16: %q", len(argv), argv)
	}
	got := map[string]string{}
	for i := 4; i+1 < len(argv); i += 2 {
		got[argv[i]] = argv[i+1]
	}
	if got["--topic"] != spec.Topic {
		t.Errorf("--topic token = %q, want %q", got["--topic"], spec.Topic)
	}
	if got["--requirements"] != spec.Requirements {
		t.Errorf("--requirements token = %q, want %q", got["--requirements"], spec.Requirements)
	}
	if got["--keywords"] != spec.Keywords {
		t.Errorf("--keywords token = %q, want %q", got["--keywords"], spec.Keywords)
	}
}

func TestCreate_QuotesInValuesStaySingleTokens(t *testing.T) {
	stub := &stubRunner{}
	e := newTestEngine(stub)

	spec := TaskSpec{Topic: `the "best" of both \ worlds`}
	rec, err := e.Create(context.Background(), spec)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	argv, err := shellwords.Parse(rec.Command)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	found := false
	for i, a := range argv {
		if a == "--topic" && i+1 < len(argv) {
			found = true
			if argv[i+1] != spec.Topic {
				t.Errorf("topic token = %q, want %q", argv[i+1], spec.Topic)
			}
		}
	}
	if !found {
		t.Fatalf("no --topic flag in argv %q", argv)
	}
}

func TestCreate_AppliesConfigDefaults(t *testing.T) {
	stub := &stubRunner{}
	e := newTestEngine(stub)

	rec, err := e.Create(context.Background(), TaskSpec{Topic: "hello"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, want := range []string{"--min-words 500", "--max-words 1000", "--mode sync"} {
		if !strings.Contains(rec.Command, want) {
			t.Errorf("Command %q missing %q", rec.Command, want)
		}
	}
}

func TestCreate_Validation(t *testing.T) {
	e := newTestEngine(&stubRunner{})
	ctx := context.Background()

	cases := []struct {
		name string
		spec TaskSpec
	}{
		{"empty topic", TaskSpec{}},
		{"bad mode", TaskSpec{Topic: "t", Mode: "later"}},
		{"min exceeds max", TaskSpec{Topic: "t", MinWords: 900, MaxWords: 100}},
		{"negative words", TaskSpec{Topic: "t", MinWords: -1, MaxWords: 100}},
	}
	for _, tc := range cases {
		if _, err := e.Create(ctx, tc.spec); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestTaskOps_CommandStrings(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		op   report.Op
		call func(e *Engine) (*report.Record, error)
		want string
	}{
		{report.OpStatus, func(e *Engine) (*report.Record, error) { return e.Status(ctx, "abc123") },
			"npm run cli:status -- --id abc123"},
		{report.OpResult, func(e *Engine) (*report.Record, error) { return e.Result(ctx, "abc123") },
			"npm run cli:result -- --id abc123"},
		{report.OpRetry, func(e *Engine) (*report.Record, error) { return e.Retry(ctx, "abc123") },
			"npm run cli:retry -- --id abc123"},
		{report.OpCancel, func(e *Engine) (*report.Record, error) { return e.Cancel(ctx, "abc123") },
			"npm run cli:cancel -- --id abc123"},
	}
	for _, tc := range cases {
		e := newTestEngine(&stubRunner{})
		rec, err := tc.call(e)
		if err != nil {
			t.Fatalf("%s: %v", tc.op, err)
		}
		if rec.Command != tc.want {
			t.Errorf("%s Command = %q, want %q", tc.op, rec.Command, tc.want)
		}
		if rec.TaskID != "abc123" {
			t.Errorf("%s TaskID = %q, want abc123", tc.op, rec.TaskID)
		}
	}
}

func TestList_CommandString(t *testing.T) {
	e := newTestEngine(&stubRunner{})
	rec, err := e.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Command != "npm run cli:list" {
		t.Errorf("Command = %q, want %q", rec.Command, "npm run cli:list")
	}
}

func TestTaskOps_RejectBadIDs(t *testing.T) {
	e := newTestEngine(&stubRunner{})
	ctx := context.Background()

	for _, id := range []string{"", "has space", "has\ttab", `has"quote`, `back\slash`} {
		if _, err := e.Status(ctx, id); err == nil {
			t.Errorf("Status(%q): expected error", id)
		}
	}
}

func TestCommandLine_NoScriptPrefix(t *testing.T) {
	stub := &stubRunner{}
	e := newTestEngine(stub)
	e.Config = &config.Config{CLI: config.CLIConfig{Command: "content-creator", ScriptPrefix: "none"}}

	rec, err := e.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Command != "content-creator list" {
		t.Errorf("Command = %q, want %q", rec.Command, "content-creator list")
	}
}

func TestRecord_ExitCodeIsOnlySuccessSignal(t *testing.T) {
	stub := &stubRunner{exitCode: 3, stdout: "partial", stderr: "boom"}
	e := newTestEngine(stub)

	rec, err := e.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.OK() {
		t.Error("OK() = true, want false for exit code 3")
	}
	if rec.Stdout != "partial" || rec.Stderr != "boom" {
		t.Errorf("outputs = (%q, %q), want captured text", rec.Stdout, rec.Stderr)
	}
}
