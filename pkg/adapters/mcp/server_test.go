package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/reattach"
	"github.com/aretw0/reattach/pkg/adapters/memory"
	"github.com/aretw0/reattach/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardYAML = `
id: design
selection: [f1]
root:
  id: page
  type: PAGE
  name: Page
  children:
    - id: tmpl
      type: INSTANCE
      name: Card
      width: 10
      height: 10
    - id: f1
      type: FRAME
      name: Card
      width: 100
      height: 40
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng := reattach.New(reattach.WithReportStore(memory.NewStore()))
	return NewServer(eng, nil)
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.MCPServer().GetTool(name)
	require.NotNil(t, tool, "tool %s is registered", name)

	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	return res
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "first content is text")
	return text.Text
}

func TestServer_RegistersTools(t *testing.T) {
	s := newTestServer(t)
	tools := s.MCPServer().ListTools()
	for _, name := range []string{"reattach", "inspect_tree", "get_report"} {
		assert.Contains(t, tools, name)
	}
	assert.NotEmpty(t, tools["reattach"].Tool.OutputSchema.Properties, "reattach advertises its output")
}

func TestReattachTool(t *testing.T) {
	s := newTestServer(t)

	res := callTool(t, s, "reattach", map[string]any{"document": cardYAML, "mode": "copyOverrides"})
	require.False(t, res.IsError, textOf(t, res))

	out, ok := res.StructuredContent.(ReattachResult)
	require.True(t, ok)
	assert.Equal(t, "1 processed, 0 skipped", out.Report.Message)
	assert.Equal(t, domain.ModeCopyOverrides, out.Report.Mode)

	var doc domain.Document
	require.NoError(t, json.Unmarshal(out.Document, &doc))
	require.Len(t, doc.Root.Children, 2)
	assert.Equal(t, domain.CategoryInstance, doc.Root.Children[1].Category)
	assert.Equal(t, 100.0, doc.Root.Children[1].Width)

	report := callTool(t, s, "get_report", map[string]any{"id": out.Report.ID})
	require.False(t, report.IsError)
	assert.Contains(t, textOf(t, report), `"message":"1 processed, 0 skipped"`)
}

func TestReattachTool_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		args map[string]any
	}{
		{"unknown mode", map[string]any{"document": cardYAML, "mode": "explode"}},
		{"broken document", map[string]any{"document": "id: [unterminated"}},
		{"bad expression", map[string]any{"document": cardYAML, "where": "type =="}},
		{"unknown selection", map[string]any{"document": cardYAML, "select": []any{"ghost"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, s, "reattach", tt.args)
			assert.True(t, res.IsError)
		})
	}
}

func TestInspectTreeTool(t *testing.T) {
	s := newTestServer(t)

	outline := callTool(t, s, "inspect_tree", map[string]any{"document": cardYAML})
	require.False(t, outline.IsError)
	assert.Contains(t, textOf(t, outline), "**Card `FRAME` (f1)** (selected)")
	assert.Contains(t, textOf(t, outline), "_Card `INSTANCE` (tmpl)_ (template)")

	mermaid := callTool(t, s, "inspect_tree", map[string]any{
		"document": cardYAML,
		"format":   "mermaid",
		"where":    `type == "INSTANCE"`,
	})
	require.False(t, mermaid.IsError)
	assert.Contains(t, textOf(t, mermaid), "class tmpl selected;")

	bad := callTool(t, s, "inspect_tree", map[string]any{"document": cardYAML, "format": "svg"})
	assert.True(t, bad.IsError)
}

func TestGetReportTool_NotFound(t *testing.T) {
	s := newTestServer(t)
	res := callTool(t, s, "get_report", map[string]any{"id": "nope"})
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), `"nope" not found`)
}

func TestReportsResource(t *testing.T) {
	s := newTestServer(t)
	res := callTool(t, s, "reattach", map[string]any{"document": cardYAML})
	out := res.StructuredContent.(ReattachResult)

	msg := s.MCPServer().HandleMessage(context.Background(), json.RawMessage(
		`{"jsonrpc":"2.0","id":1,"method":"resources/read","params":{"uri":"`+ReportsURI+`"}}`))
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(data), out.Report.ID)
}
