package toolbuiltin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cexll/agentcli-go/pkg/tool"
)

const (
	defaultCommandTimeout = 2 * time.Minute
	maxCapturedBytes      = 100 << 10 // 100 KiB per stream
)

var bashSchema = &tool.JSONSchema{
	Type: "object",
	Properties: map[string]any{
		"command": tool.Property("string", "The shell command to execute"),
	},
	Required: []string{"command"},
}

// BashTool runs a shell command in the current working directory and feeds
// the captured output back to the model. Command failures are part of the
// result text, not errors: a non-zero exit produces a labeled report the
// model can reason about, and a command that cannot be launched at all
// produces an ERROR-prefixed line.
type BashTool struct {
	timeout time.Duration
}

// NewBashTool constructs a BashTool with the default per-command timeout.
func NewBashTool() *BashTool {
	return &BashTool{timeout: defaultCommandTimeout}
}

// NewBashToolWithTimeout constructs a BashTool with an explicit per-command
// timeout. A non-positive timeout falls back to the default.
func NewBashToolWithTimeout(timeout time.Duration) *BashTool {
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	return &BashTool{timeout: timeout}
}

func (b *BashTool) Name() string { return "Bash" }

func (b *BashTool) Description() string {
	return "Execute a shell command and return its output"
}

func (b *BashTool) Schema() *tool.JSONSchema { return bashSchema }

func (b *BashTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	args, err := decodeParams[bashParams](params)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(args.Command) == "" {
		return "", fmt.Errorf("command cannot be empty")
	}

	runCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, "sh", "-c", args.Command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if err := ctx.Err(); err != nil {
		return "", err
	}

	outText := truncateOutput(stdout.String())
	errText := truncateOutput(stderr.String())

	if runErr == nil {
		return successOutput(outText, errText), nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		if runCtx.Err() == context.DeadlineExceeded {
			return fmt.Sprintf("ERROR: command timed out after %s\nstdout:\n%s\nstderr:\n%s",
				b.timeout, outText, errText), nil
		}
		return fmt.Sprintf("Command failed with exit code %d\nstdout:\n%s\nstderr:\n%s",
			exitErr.ExitCode(), outText, errText), nil
	}

	// Launch failures (missing shell, bad working directory) stay
	// recoverable so the model can try a different command.
	return fmt.Sprintf("ERROR: failed to run command: %v", runErr), nil
}

// successOutput joins stdout and stderr for a zero-exit command. Stderr is
// appended only when non-empty, separated by a newline unless stdout already
// ends with one or is empty.
func successOutput(stdout, stderr string) string {
	if stderr == "" {
		return stdout
	}
	if stdout == "" {
		return stderr
	}
	if strings.HasSuffix(stdout, "\n") {
		return stdout + stderr
	}
	return stdout + "\n" + stderr
}

func truncateOutput(s string) string {
	if len(s) <= maxCapturedBytes {
		return s
	}
	cut := maxCapturedBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "\n... [output truncated]"
}

type bashParams struct {
	Command string `json:"command"`
}
