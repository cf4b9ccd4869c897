package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smogili1/mac-computer-use/internal/workspace"
)

type EditFileInput struct {
	Path   string `json:"path" jsonschema_description:"Target relative file path"`
	OldStr string `json:"old_str" jsonschema_description:"Exact text to replace; must be present when editing an existing file."`
	NewStr string `json:"new_str" jsonschema_description:"New text to write or replace old_str with"`
}

var EditFileCapability = Capability{
	Name: "edit_file",
	Description: `Create or modify a text file addressed by a relative path within the workspace.

When old_str is empty and the file doesn't exist, a new file is created.

When editing an existing file, all occurrences of old_str are replaced with new_str; old_str and new_str must be different.
`,
	InputSchema: GenerateSchema[EditFileInput](),
	Function:    EditFile,
}

func EditFile(ctx context.Context, input json.RawMessage) (Result, error) {
	var in EditFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Result{}, err
	}

	if in.Path == "" || in.OldStr == in.NewStr {
		return Result{}, fmt.Errorf("invalid edit parameters")
	}

	oldContent, readErr := workspace.ReadFile(in.Path)
	if readErr != nil {
		// Missing file plus empty old_str means create.
		if in.OldStr == "" {
			if err := workspace.WriteFile(in.Path, in.NewStr); err != nil {
				return Result{}, err
			}
			return Result{Output: fmt.Sprintf("Successfully created file %s", in.Path)}, nil
		}
		return Result{}, readErr
	}

	// The file exists: require a non-empty old_str to avoid ambiguity.
	if in.OldStr == "" {
		return Result{}, fmt.Errorf("old_str must be provided when editing an existing file")
	}

	newContent := strings.Replace(oldContent, in.OldStr, in.NewStr, -1)
	if newContent == oldContent {
		return Result{}, fmt.Errorf("old_str not found in file")
	}

	if err := workspace.WriteFile(in.Path, newContent); err != nil {
		return Result{}, err
	}
	return Result{Output: "OK"}, nil
}
