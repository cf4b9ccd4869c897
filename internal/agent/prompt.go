package agent

import (
	"fmt"
	"runtime"
	"time"
)

// SystemPrompt describes the local macOS environment to the model. suffix,
// when non-empty, is appended after a space for per-run additions.
func SystemPrompt(suffix string) string {
	prompt := fmt.Sprintf(`<SYSTEM_CAPABILITY>
* You are utilizing a macOS environment on %s architecture with command line internet access.
* Package management: use homebrew to install packages, curl for HTTP requests, npm/yarn for Node.js, pip for Python.
* System automation: cliclick simulates mouse/keyboard input, osascript runs AppleScript, launchctl manages services, defaults reads/writes preferences.
* For large command output, redirect to a tmp file and page through it with read_file, or use grep with -B/-A context flags.
* Command line function calls may have latency. Chain multiple operations into single requests where feasible.
* The current date is %s.
</SYSTEM_CAPABILITY>`, runtime.GOARCH, time.Now().Format("Monday, January 2, 2006"))

	if suffix != "" {
		prompt += " " + suffix
	}
	return prompt
}
