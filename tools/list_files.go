package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/smogili1/mac-computer-use/internal/workspace"
)

type ListFilesInput struct {
	Path     string `json:"path,omitempty" jsonschema_description:"Optional relative path to list files from (defaults to current directory)."`
	Page     int    `json:"page,omitempty" jsonschema_description:"1-based page number (default 1)."`
	PageSize int    `json:"page_size,omitempty" jsonschema_description:"Page size (default 200)."`
}

// defaultListFilesPageSize is the fallback page size when page_size <= 0.
const defaultListFilesPageSize = 200

var ListFilesCapability = Capability{
	Name:        "list_files",
	Description: "List names of files in a directory within the workspace (non-recursive).",
	InputSchema: GenerateSchema[ListFilesInput](),
	Function:    ListFiles,
}

// ListFiles lists non-recursive directory entries under the workspace
// sandbox, then applies deterministic sorting and simple paging.
// Defaults:
//   - page: 1 when <= 0
//   - page_size: 200 when <= 0
//
// Contract: the output is a JSON-encoded []string.
func ListFiles(ctx context.Context, input json.RawMessage) (Result, error) {
	var in ListFilesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Result{}, err
	}
	page := in.Page
	if page <= 0 {
		page = 1
	}
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = defaultListFilesPageSize
	}

	namesJSON, err := workspace.ListFiles(in.Path)
	if err != nil {
		return Result{}, err
	}
	var names []string
	if err := json.Unmarshal([]byte(namesJSON), &names); err != nil {
		return Result{}, fmt.Errorf("invalid list_files payload: %w", err)
	}
	// Standardise order so paging is deterministic across filesystems.
	sort.Strings(names)

	start := (page - 1) * pageSize
	// Out-of-range page returns an empty JSON array; keep the output contract.
	if start >= len(names) {
		return Result{Output: "[]"}, nil
	}
	end := start + pageSize
	if end > len(names) {
		end = len(names)
	}

	b, err := json.Marshal(names[start:end])
	if err != nil {
		return Result{}, err
	}
	return Result{Output: string(b)}, nil
}
