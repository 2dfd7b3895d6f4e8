package toolbuiltin

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/cexll/agentcli-go/pkg/tool"
)

var readSchema = &tool.JSONSchema{
	Type: "object",
	Properties: map[string]any{
		"file_path": tool.Property("string", "The path to the file to read"),
	},
	Required: []string{"file_path"},
}

// ReadTool returns the full UTF-8 content of a file. Open and decode
// failures abort the run rather than flowing back to the model; the service
// is expected to only name files it has been told exist.
type ReadTool struct{}

// NewReadTool constructs a ReadTool.
func NewReadTool() *ReadTool { return &ReadTool{} }

func (r *ReadTool) Name() string { return "Read" }

func (r *ReadTool) Description() string { return "Read and return the contents of a file" }

func (r *ReadTool) Schema() *tool.JSONSchema { return readSchema }

func (r *ReadTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	args, err := decodeParams[readParams](params)
	if err != nil {
		return "", err
	}
	path := strings.TrimSpace(args.FilePath)
	if path == "" {
		return "", fmt.Errorf("file_path cannot be empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read %s: content is not valid UTF-8", path)
	}
	return string(data), nil
}

type readParams struct {
	FilePath string `json:"file_path"`
}
