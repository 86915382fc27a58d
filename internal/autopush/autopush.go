// Package autopush commits the working tree and pushes it to a git remote
// when the bot starts. Failures are reported in the returned Result and
// never stop the bot.
package autopush

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/onedice/onedicebot/internal/config"
	"github.com/onedice/onedicebot/internal/errs"
	"github.com/onedice/onedicebot/internal/logger"
)

// Stage names, in execution order.
const (
	StageAdd    = "add"
	StageCommit = "commit"
	StagePush   = "push"
)

// CommitTimeFormat is the layout of the timestamp in the commit message.
const CommitTimeFormat = "2006-01-02 15:04:05"

// Result is the outcome of one sync attempt.
type Result struct {
	Success   bool
	Timestamp time.Time
	// Stage is the stage that failed; empty on success.
	Stage string
	Err   error
	// Output is the combined output of the failed stage.
	Output string
}

// CommandRunner runs an external program in dir and returns its combined
// output.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// Runner performs the add/commit/push sequence.
type Runner struct {
	cfg    config.AutoPushConfig
	exec   CommandRunner
	logger *slog.Logger
	now    func() time.Time
}

// Option customises a Runner.
type Option func(*Runner)

// WithCommandRunner replaces the os/exec runner.
func WithCommandRunner(r CommandRunner) Option {
	return func(rn *Runner) { rn.exec = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(rn *Runner) { rn.now = now }
}

// NewRunner creates a Runner for cfg.
func NewRunner(cfg config.AutoPushConfig, log *slog.Logger, opts ...Option) *Runner {
	if log == nil {
		log = logger.Discard()
	}
	r := &Runner{
		cfg:    cfg,
		exec:   ExecRunner{},
		logger: log.With("component", "auto_push"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cfg.GitPath == "" {
		r.cfg.GitPath = config.DefaultGitPath
	}
	if r.cfg.Remote == "" {
		r.cfg.Remote = config.DefaultAutoPushRemote
	}
	if r.cfg.Branch == "" {
		r.cfg.Branch = config.DefaultAutoPushBranch
	}
	return r
}

// Sync stages all changes, commits them with a timestamped message and pushes
// to the configured remote and branch. It stops at the first failing stage.
// Sync never panics and never returns an error: the outcome is in Result and
// in the log.
func (r *Runner) Sync(ctx context.Context) (res Result) {
	res.Timestamp = r.now()

	defer func() {
		if p := recover(); p != nil {
			res.Success = false
			res.Err = errs.NewSideEffectError(res.Stage, "auto-push panicked", fmt.Errorf("%v", p))
		}
		r.log(ctx, res)
	}()

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	message := "Auto-commit: " + res.Timestamp.Format(CommitTimeFormat)
	stages := []struct {
		name string
		args []string
	}{
		{StageAdd, []string{"add", "."}},
		{StageCommit, []string{"commit", "-m", message}},
		{StagePush, []string{"push", r.cfg.Remote, r.cfg.Branch}},
	}

	for _, stage := range stages {
		res.Stage = stage.name
		out, err := r.exec.Run(ctx, r.cfg.Dir, r.cfg.GitPath, stage.args...)
		if err != nil {
			res.Output = strings.TrimSpace(string(out))
			res.Err = errs.NewSideEffectError(stage.name, fmt.Sprintf("git %s failed", stage.name), err)
			return res
		}
	}

	res.Stage = ""
	res.Success = true
	return res
}

func (r *Runner) log(ctx context.Context, res Result) {
	ts := res.Timestamp.Format(CommitTimeFormat)
	if res.Success {
		r.logger.InfoContext(ctx, "Auto-push successful",
			"timestamp", ts,
			"remote", r.cfg.Remote,
			"branch", r.cfg.Branch)
		return
	}
	r.logger.ErrorContext(ctx, "Auto-push failed",
		"timestamp", ts,
		"stage", res.Stage,
		"error", res.Err,
		"output", res.Output)
}
