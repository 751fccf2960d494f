// Package mcp exposes the execution runner as a Model Context Protocol tool,
// so an MCP client can drive the same automation tool the HTTP bridge does.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/xdg/tagbridge/internal/audit"
	"github.com/xdg/tagbridge/internal/clog"
	"github.com/xdg/tagbridge/internal/runner"
	"github.com/xdg/tagbridge/internal/version"
)

// ToolName is the name of the registered tool.
const ToolName = "run_steps"

// Executor runs a script. *runner.Runner satisfies it.
type Executor interface {
	Execute(ctx context.Context, steps string, args []string) runner.Result
}

type handler struct {
	exec        Executor
	defaultArgs []string
	audit       *audit.Logger
}

type runParams struct {
	Steps string   `json:"steps" jsonschema:"Automation script to execute, in the tool's own scripting language."`
	Args  []string `json:"args,omitempty" jsonschema:"Command-line flags for the tool, e.g. [\"-edge\"]. Omit to use the configured defaults."`
}

// NewServer returns an MCP server with the run_steps tool registered.
// auditLogger may be nil.
func NewServer(exec Executor, defaultArgs []string, auditLogger *audit.Logger) *sdkmcp.Server {
	h := &handler{
		exec:        exec,
		defaultArgs: slices.Clone(defaultArgs),
		audit:       auditLogger,
	}

	s := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "tagbridge", Version: version.Version}, &sdkmcp.ServerOptions{
		Capabilities: &sdkmcp.ServerCapabilities{
			Tools: &sdkmcp.ToolCapabilities{ListChanged: false},
		},
	})

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name: ToolName,
		Description: `Run an automation script on the host and return its result.

The script is written to a temporary file and passed to the automation tool
together with args. The result is a JSON object with exit_code, stdout,
stderr and cmd. exit_code -1 means the tool could not be started.`,
	}, h.runHandler)

	return s
}

func (h *handler) runHandler(ctx context.Context, _ *sdkmcp.CallToolRequest, params runParams) (*sdkmcp.CallToolResult, any, error) {
	id := uuid.NewString()

	if strings.TrimSpace(params.Steps) == "" {
		_ = h.audit.LogReject(id, "empty steps")
		return errorResult("empty steps")
	}

	args := params.Args
	if args == nil {
		args = slices.Clone(h.defaultArgs)
	}

	_ = h.audit.LogRequest(id, "mcp", args)
	clog.Debug("[%s] mcp %s: %d bytes, args %v", id, ToolName, len(params.Steps), args)

	start := time.Now()
	res := h.exec.Execute(runner.WithRequestID(ctx, id), params.Steps, args)
	_ = h.audit.LogComplete(id, res.Cmd, res.ExitCode, time.Since(start))

	data, err := json.Marshal(res)
	if err != nil {
		return errorResult(fmt.Sprintf("encode result: %v", err))
	}
	if !res.OK() {
		return errorResult(string(data))
	}
	return textResult(string(data))
}

func textResult(text string) (*sdkmcp.CallToolResult, any, error) {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
	}, nil, nil
}

func errorResult(text string) (*sdkmcp.CallToolResult, any, error) {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
