package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

type BashInput struct {
	Command string `json:"command" jsonschema_description:"The shell command to run."`
}

var BashCapability = Capability{
	Name: "bash",
	Description: `Run a shell command on the local machine and return its output.

stdout is returned as the result output; a non-zero exit status returns
stderr (or the exit error) as the result error. Commands run with the
calling process's environment and working directory.`,
	InputSchema: GenerateSchema[BashInput](),
	Function:    Bash,
}

// bashOutputCap bounds how much command output is fed back to the model.
const bashOutputCap = 16_000

// Bash runs a single command under /bin/bash -c. The command inherits ctx,
// so a cancelled conversation kills the process; there is no per-command
// timeout beyond that.
func Bash(ctx context.Context, input json.RawMessage) (Result, error) {
	var in BashInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(in.Command) == "" {
		return Result{}, fmt.Errorf("command must not be empty")
	}

	cmd := exec.CommandContext(ctx, "/bin/bash", "-c", in.Command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	out := clampBytes(stdout.String(), bashOutputCap)
	if runErr != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = runErr.Error()
		}
		// Keep partial stdout alongside the error so the model sees both.
		return Result{Output: out, Error: clampBytes(msg, bashOutputCap)}, nil
	}
	return Result{Output: out}, nil
}

func clampBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "\n-- truncated --\n"
}
