package workspace

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ReadFile reads a file addressed by a relative path under the workspace
// root. It validates the path and returns a ToolError on policy violations.
func ReadFile(relPath string) (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}

	absPath, err := ValidatePath(root, relPath)
	if err != nil {
		return "", err
	}

	fi, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", ToolError{Code: "ERR_NOT_A_FILE", Message: "path is a directory"}
	}

	b, err := os.ReadFile(absPath)
	if err != nil {
		return "", err // standard error for I/O issues (not policy)
	}
	return string(b), nil
}

// WriteFile writes content to a file addressed by a relative path under the
// workspace root, creating parent directories as needed.
func WriteFile(relPath, content string) error {
	root, err := Root()
	if err != nil {
		return err
	}

	absPath, err := ValidatePath(root, relPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(absPath, []byte(content), 0o644)
}

// ListFiles lists non-recursive directory entries for a relative directory
// path under the workspace root. It returns a JSON-encoded []string of
// names, with directories suffixed by "/".
func ListFiles(relDir string) (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}

	if relDir == "" {
		relDir = "."
	}
	absDir, err := ValidatePath(root, relDir)
	if err != nil {
		return "", err
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}

	b, err := json.Marshal(names)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
