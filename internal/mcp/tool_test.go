package mcp

// Test Plan for the MCP tools:
// - NewServer constructs and registers without panicking
// - codeArgument extracts the code string and rejects missing/empty/non-string
// - The analyze handler returns the full result JSON for valid code
// - The analyze handler returns an error result when code is missing
// - The scan handler returns findings for insecure code
// - The scan handler reports parse errors as success=false, not a tool error

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asears/grand-ai-hotel/internal/analyzer"
)

func codeRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "should be text content")
	return textContent.Text
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	s := NewServer("test")
	require.NotNil(t, s)
	assert.NotNil(t, s.engine)
	assert.NotNil(t, s.mcp)
}

func TestCodeArgument(t *testing.T) {
	t.Parallel()

	code, ok := codeArgument(codeRequest(map[string]interface{}{"code": "x = 1"}))
	require.True(t, ok)
	assert.Equal(t, "x = 1", code)

	_, ok = codeArgument(codeRequest(map[string]interface{}{}))
	assert.False(t, ok)

	_, ok = codeArgument(codeRequest(map[string]interface{}{"code": ""}))
	assert.False(t, ok)

	_, ok = codeArgument(codeRequest(map[string]interface{}{"code": 42}))
	assert.False(t, ok)

	_, ok = codeArgument(mcp.CallToolRequest{})
	assert.False(t, ok)
}

func TestAnalyzeHandler(t *testing.T) {
	t.Parallel()

	handler := createAnalyzeHandler(analyzer.New())

	result, err := handler(context.Background(), codeRequest(map[string]interface{}{
		"code": "def f():\n    return 1\n",
	}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	var response analyzer.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	assert.True(t, response.Success)
	require.NotNil(t, response.Structure)
	assert.Len(t, response.Structure.Functions, 1)
	assert.Equal(t, "f", response.Structure.Functions[0].Name)
}

func TestAnalyzeHandlerMissingCode(t *testing.T) {
	t.Parallel()

	handler := createAnalyzeHandler(analyzer.New())

	result, err := handler(context.Background(), codeRequest(map[string]interface{}{}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestSecurityScanHandler(t *testing.T) {
	t.Parallel()

	handler := createSecurityScanHandler(analyzer.New())

	result, err := handler(context.Background(), codeRequest(map[string]interface{}{
		"code": "eval(user_input)\n",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var response struct {
		Success  bool               `json:"success"`
		Findings []analyzer.Finding `json:"findings"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	assert.True(t, response.Success)
	require.Len(t, response.Findings, 1)
	assert.Equal(t, analyzer.SeverityHigh, response.Findings[0].Severity)
}

func TestSecurityScanHandlerSyntaxError(t *testing.T) {
	t.Parallel()

	handler := createSecurityScanHandler(analyzer.New())

	result, err := handler(context.Background(), codeRequest(map[string]interface{}{
		"code": "def broken(:\n",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var response struct {
		Success bool     `json:"success"`
		Errors  []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	assert.False(t, response.Success)
	assert.NotEmpty(t, response.Errors)
}
