package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/asears/grand-ai-hotel/internal/analyzer"
)

// AddAnalyzeTool registers the python_analyze tool. The registration is
// composable and can be combined with other tools on the same server.
func AddAnalyzeTool(s *server.MCPServer, engine *analyzer.Engine) {
	tool := mcp.NewTool(
		"python_analyze",
		mcp.WithDescription("Analyze Python source code: extract functions, classes and imports, compute size metrics, serialize the syntax tree and scan for security issues. Returns the full analysis result as JSON."),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Python source code to analyze")),
	)

	s.AddTool(tool, createAnalyzeHandler(engine))
}

// AddSecurityScanTool registers the python_security_scan tool, which runs
// only the security rule engine.
func AddSecurityScanTool(s *server.MCPServer, engine *analyzer.Engine) {
	tool := mcp.NewTool(
		"python_security_scan",
		mcp.WithDescription("Scan Python source code for security anti-patterns (dangerous calls, injection risks, hardcoded secrets, weak crypto). Returns findings ranked by severity."),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Python source code to scan")),
	)

	s.AddTool(tool, createSecurityScanHandler(engine))
}

// codeArgument extracts the required code parameter from a tool request.
func codeArgument(request mcp.CallToolRequest) (string, bool) {
	argsMap, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return "", false
	}
	code, ok := argsMap["code"].(string)
	if !ok || code == "" {
		return "", false
	}
	return code, true
}

func createAnalyzeHandler(engine *analyzer.Engine) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		code, ok := codeArgument(request)
		if !ok {
			return mcp.NewToolResultError("code parameter is required"), nil
		}

		result := engine.Analyze(code)
		data, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

func createSecurityScanHandler(engine *analyzer.Engine) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		code, ok := codeArgument(request)
		if !ok {
			return mcp.NewToolResultError("code parameter is required"), nil
		}

		findings, parseErrs := engine.Scan(code)
		if len(parseErrs) > 0 {
			errs := make([]string, 0, len(parseErrs))
			for _, pe := range parseErrs {
				errs = append(errs, pe.Error())
			}
			data, err := json.Marshal(map[string]any{"success": false, "errors": errs})
			if err != nil {
				return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
			}
			return mcp.NewToolResultText(string(data)), nil
		}

		data, err := json.Marshal(map[string]any{"success": true, "findings": findings})
		if err != nil {
			return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}
