// Package workspace provides sandboxed file access for the file tools.
//
// Every file tool addresses paths relative to a single workspace root
// (AGENT_WORKSPACE_ROOT, defaulting to the working directory). Validation
// rejects absolute paths, parent traversal and symlink escapes, and denies
// access under .git/ and .agent/.
package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ToolError is a machine-readable error body surfaced back to the model as JSON.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string to keep tool_result payloads small.
func (e ToolError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

var (
	rootOnce    sync.Once
	absRoot     string
	initRootErr error
)

func initRoot() {
	absRoot, initRootErr = ResolveRoot(os.Getenv("AGENT_WORKSPACE_ROOT"))
}

// Root returns the cached absolute workspace root, initialising it once on
// first use.
func Root() (string, error) {
	rootOnce.Do(initRoot)
	return absRoot, initRootErr
}

// ResolveRoot resolves the absolute workspace root. An empty root defaults
// to the working directory.
func ResolveRoot(root string) (string, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		root = cwd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("abs(root): %w", err)
	}
	// Resolve symlinks where possible so boundary checks are reliable.
	if r, err := filepath.EvalSymlinks(root); err == nil {
		root = r
	}
	return root, nil
}

// ValidatePath resolves relPath against absRoot and returns an absolute
// path inside the sandbox. It rejects absolute inputs, parent traversal and
// symlink escapes, and denies paths under .git/ and .agent/. On violation
// it returns a ToolError.
func ValidatePath(absRoot, relPath string) (string, error) {
	if filepath.IsAbs(relPath) {
		return "", ToolError{Code: "ERR_PATH_OUTSIDE_SANDBOX", Message: "absolute paths are not allowed"}
	}

	cleaned := filepath.Clean(relPath)
	if cleaned == "" {
		cleaned = "."
	}

	candidate := filepath.Join(absRoot, cleaned)

	// Best-effort symlink resolution: resolve the whole candidate if it
	// exists, otherwise the deepest existing ancestor (the parent dir),
	// rejoined with the leaf. This reveals escapes via a symlinked parent
	// even when the leaf file doesn't exist yet.
	if resolved, err := filepath.EvalSymlinks(candidate); err == nil {
		candidate = resolved
	} else {
		parent := filepath.Dir(candidate)
		if resolvedParent, err2 := filepath.EvalSymlinks(parent); err2 == nil {
			candidate = filepath.Join(resolvedParent, filepath.Base(candidate))
		}
	}

	// Boundary check via filepath.Rel: robust against partial prefix matches.
	rel, err := filepath.Rel(absRoot, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", ToolError{Code: "ERR_PATH_OUTSIDE_SANDBOX", Message: "requested path resolves outside the sandbox root"}
	}

	relClean := filepath.ToSlash(rel)
	if relClean == ".git" || strings.HasPrefix(relClean, ".git/") || relClean == ".agent" || strings.HasPrefix(relClean, ".agent/") {
		return "", ToolError{Code: "ERR_DENIED_PATH", Message: "access under .git/ or .agent/ is not allowed"}
	}

	return candidate, nil
}
