package status

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// StatusArgs are the git arguments producing the stream Parse expects.
var StatusArgs = []string{"status", "--porcelain=2", "--branch", "--show-stash"}

// Runner executes git in dir and returns its standard output.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// ExecRunner executes the configured git binary.
type ExecRunner struct {
	GitBin string
}

func NewExecRunner(gitBin string) *ExecRunner {
	if strings.TrimSpace(gitBin) == "" {
		gitBin = "git"
	}
	return &ExecRunner{GitBin: gitBin}
}

func (e *ExecRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	if strings.ContainsRune(dir, 0) {
		return nil, fmt.Errorf("dir contains null byte")
	}
	for _, arg := range args {
		if strings.ContainsRune(arg, 0) {
			return nil, fmt.Errorf("argument contains null byte")
		}
	}

	cmd := exec.CommandContext(ctx, e.GitBin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_TERMINAL_PROMPT=0",
		"GIT_OPTIONAL_LOCKS=0",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("git %s: %w: %s", strings.Join(args[:min(len(args), 1)], " "), err, msg)
	}
	return stdout.Bytes(), nil
}

// Extended runs the status query through runner and parses its output.
// Callers bound its latency with ctx.
func Extended(ctx context.Context, runner Runner, dir string) (Counts, error) {
	out, err := runner.Run(ctx, dir, StatusArgs...)
	if err != nil {
		return Counts{}, err
	}
	return Parse(out)
}
