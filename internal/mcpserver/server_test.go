package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "lib.ts", "export function greet(name: string) { return name; }\n")
	writeFile(t, dir, "main.ts", "import { greet } from './lib';\nfunction run() { greet('a'); }\n")

	s := New(dir, nil)
	t.Cleanup(func() { s.Close() })
	return s
}

func callTool(t *testing.T, s *Server, name string, args interface{}) (interface{}, *ErrorObj) {
	t.Helper()
	argBytes, err := json.Marshal(args)
	require.NoError(t, err)
	params, err := json.Marshal(map[string]interface{}{"name": name, "arguments": json.RawMessage(argBytes)})
	require.NoError(t, err)

	result, err := s.handleToolCall(context.Background(), params)
	if err != nil {
		return nil, toErrorObj(err)
	}
	return result, nil
}

func TestToolDescriptions_FitTokenBudget(t *testing.T) {
	s := New(".", nil)
	for _, tool := range s.tools {
		words := strings.Fields(tool.Description)
		assert.LessOrEqualf(t, len(words), 100, "tool %s description exceeds 100 tokens", tool.Name)
	}
}

func TestHandleToolsList_ListsAllSix(t *testing.T) {
	s := New(".", nil)
	result := s.handleToolsList().(map[string]interface{})
	tools := result["tools"].([]map[string]interface{})
	assert.Len(t, tools, 6)
}

func TestFindSymbol_ReturnsMatch(t *testing.T) {
	s := newTestServer(t)
	result, errObj := callTool(t, s, "find_symbol", map[string]interface{}{"pattern": "greet"})
	require.Nil(t, errObj)

	envelope := result.(map[string]interface{})
	text := envelope["content"].([]map[string]interface{})[0]["text"].(string)
	assert.Contains(t, text, "\"name\": \"greet\"")
}

func TestFindSymbol_NotFoundReturnsErrorWithSuggestions(t *testing.T) {
	s := newTestServer(t)
	_, errObj := callTool(t, s, "find_symbol", map[string]interface{}{"pattern": "greett"})
	require.NotNil(t, errObj)
	assert.Equal(t, codeNotFound, errObj.Code)

	data := errObj.Data.(map[string]interface{})
	suggestions := data["suggestions"].([]string)
	assert.Contains(t, suggestions, "greet")
}

func TestFindReferences_FindsCallSite(t *testing.T) {
	s := newTestServer(t)
	result, errObj := callTool(t, s, "find_references", map[string]interface{}{"pattern": "greet"})
	require.Nil(t, errObj)

	envelope := result.(map[string]interface{})
	text := envelope["content"].([]map[string]interface{})[0]["text"].(string)
	assert.Contains(t, text, "main.ts")
}

func TestGetStats_ReportsTotals(t *testing.T) {
	s := newTestServer(t)
	result, errObj := callTool(t, s, "get_stats", map[string]interface{}{})
	require.Nil(t, errObj)

	envelope := result.(map[string]interface{})
	text := envelope["content"].([]map[string]interface{})[0]["text"].(string)
	assert.Contains(t, text, "\"TotalFiles\": 2")
}

func TestGetContext_NotFoundReturnsSuggestions(t *testing.T) {
	s := newTestServer(t)
	_, errObj := callTool(t, s, "get_context", map[string]interface{}{"pattern": "greett"})
	require.NotNil(t, errObj)
	data := errObj.Data.(map[string]interface{})
	assert.NotEmpty(t, data["suggestions"])
}

func TestUnknownMethod_ReturnsMethodNotFound(t *testing.T) {
	s := New(".", nil)
	resp := s.handleRequest(context.Background(), &Request{JSONRPC: "2.0", ID: 1, Method: "bogus"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeMethodNotFound, resp.Error.Code)
}

func TestResolveProject_CachesAcrossCalls(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	p1, err := s.resolveProject(ctx, "")
	require.NoError(t, err)
	p2, err := s.resolveProject(ctx, "")
	require.NoError(t, err)
	assert.Same(t, p1, p2)
}
