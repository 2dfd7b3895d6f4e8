package toolbuiltin

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/cexll/agentcli-go/pkg/tool"
)

var writeSchema = &tool.JSONSchema{
	Type: "object",
	Properties: map[string]any{
		"file_path": tool.Property("string", "The path of the file to create or overwrite"),
		"content":   tool.Property("string", "The full content to write to the file"),
	},
	Required: []string{"file_path", "content"},
}

// WriteTool creates or fully overwrites a file, creating missing parent
// directories first.
type WriteTool struct{}

// NewWriteTool constructs a WriteTool.
func NewWriteTool() *WriteTool { return &WriteTool{} }

func (w *WriteTool) Name() string { return "Write" }

func (w *WriteTool) Description() string {
	return "Write content to a file, replacing any existing content"
}

func (w *WriteTool) Schema() *tool.JSONSchema { return writeSchema }

func (w *WriteTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	args, err := decodeParams[writeParams](params)
	if err != nil {
		return "", err
	}
	path := strings.TrimSpace(args.FilePath)
	if path == "" {
		return "", fmt.Errorf("file_path cannot be empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(args.Content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return fmt.Sprintf("Wrote %d characters to %s", utf8.RuneCountInString(args.Content), path), nil
}

type writeParams struct {
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

// decodeParams converts a generic parameter mapping into a typed argument
// struct via a JSON round-trip, so schema field names stay the single
// source of truth.
func decodeParams[T any](params map[string]any) (T, error) {
	var out T
	raw, err := json.Marshal(params)
	if err != nil {
		return out, fmt.Errorf("encode parameters: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode parameters: %w", err)
	}
	return out, nil
}
