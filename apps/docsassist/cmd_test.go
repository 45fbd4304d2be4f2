package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/codedaily/core"
	"github.com/trezcool/codedaily/core/doctools"
	"github.com/trezcool/codedaily/services/llm"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type searcherStub struct {
	refs []core.CodeReference
}

func (s searcherStub) SearchCode(context.Context, string, string, int) ([]core.CodeReference, error) {
	return s.refs, nil
}

func setup(t *testing.T, responses ...llm.MockResponse) (*commandLine, *llm.MockProvider, *bytes.Buffer) {
	t.Helper()
	conf := &core.Config{
		DocsAssist: core.DocsAssistConfig{Name: "code-daily-docs", Version: "1.0.0", Address: ":0"},
		LLM:        core.LLMConfig{Temperature: 0.7},
	}
	provider := llm.NewMockProvider(responses...)
	stdout := new(bytes.Buffer)
	cli := &commandLine{
		conf:       conf,
		logger:     nopLogger{},
		dispatcher: doctools.NewDispatcher(llm.NewCompleter(provider, conf.LLM), searcherStub{}, nopLogger{}),
		stdin:      strings.NewReader(""),
		stdout:     stdout,
		stderr:     new(bytes.Buffer),
	}
	return cli, provider, stdout
}

func toolNames(t *testing.T, data []byte) []string {
	t.Helper()
	var tools []struct {
		Name        string                 `json:"name"`
		InputSchema map[string]interface{} `json:"inputSchema"`
	}
	require.NoError(t, json.Unmarshal(data, &tools))
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		assert.Equal(t, "object", tool.InputSchema["type"], tool.Name)
		names = append(names, tool.Name)
	}
	return names
}

var wantTools = []string{
	doctools.FetchDocsTool,
	doctools.SearchCodeExamplesTool,
	doctools.ExplainConceptTool,
	doctools.InterviewQuestionsTool,
	doctools.LearningResourcesTool,
}

func Test_commandLine_root(t *testing.T) {
	cli, _, _ := setup(t)
	assert.Equal(t, errHelp, cli.run(context.Background(), nil))
	assert.Error(t, cli.run(context.Background(), []string{"lol"}))
	assert.EqualError(t, cli.run(context.Background(), []string{"serve", "--transport", "lol"}), `unknown transport "lol"`)
}

func Test_commandLine_tools(t *testing.T) {
	cli, _, stdout := setup(t)
	require.NoError(t, cli.run(context.Background(), []string{"tools"}))
	assert.Equal(t, wantTools, toolNames(t, stdout.Bytes()))
}

func Test_commandLine_call(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		responses []llm.MockResponse
		wantErr   bool
		wantOut   string
		wantStart string
		wantCalls int
	}{
		{name: "no tool", args: []string{"call"}, wantErr: true},
		{name: "bad args", args: []string{"call", "fetch_docs", "--args", "[1]"}, wantErr: true},
		{name: "unknown tool", args: []string{"call", "foo"}, wantOut: "Unknown tool: foo\n"},
		{
			name: "missing argument", args: []string{"call", "fetch_docs", "--args", "{}"},
			wantOut: "Error: missing required argument \"topic\"\n",
		},
		{
			name: "success", args: []string{"call", "fetch_docs", "--args", `{"topic": "Go channels", "language": "general"}`},
			responses: []llm.MockResponse{{Content: "Channels connect goroutines."}},
			wantOut:   "📚 **Documentation: Go channels**\n\nChannels connect goroutines.\n",
			wantCalls: 1,
		},
		{
			name: "upstream failure is text", args: []string{"call", "fetch_docs", "--args", `{"topic": "Go channels"}`},
			wantStart: "Error: ",
			wantCalls: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, provider, stdout := setup(t, tt.responses...)
			err := cli.run(context.Background(), tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantStart != "" {
				assert.True(t, strings.HasPrefix(stdout.String(), tt.wantStart), stdout.String())
			} else {
				assert.Equal(t, tt.wantOut, stdout.String())
			}
			assert.Equal(t, tt.wantCalls, provider.CallCount())
		})
	}
}

func Test_mcpServer(t *testing.T) {
	cli, provider, _ := setup(t, llm.MockResponse{Content: "Channels connect goroutines."})
	srv := newToolServer(cli.conf.DocsAssist, cli.dispatcher)
	ctx := context.Background()

	handle := func(t *testing.T, msg string) map[string]interface{} {
		t.Helper()
		resp := srv.HandleMessage(ctx, json.RawMessage(msg))
		data, err := json.Marshal(resp)
		require.NoError(t, err)
		var out map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &out))
		return out
	}

	t.Run("initialize", func(t *testing.T) {
		out := handle(t, `{"jsonrpc": "2.0", "id": 1, "method": "initialize", "params": {
			"protocolVersion": "2024-11-05", "capabilities": {}, "clientInfo": {"name": "test", "version": "0"}
		}}`)
		result, ok := out["result"].(map[string]interface{})
		require.True(t, ok, "%v", out)
		info := result["serverInfo"].(map[string]interface{})
		assert.Equal(t, "code-daily-docs", info["name"])
		assert.Equal(t, "1.0.0", info["version"])
	})

	t.Run("tools/list", func(t *testing.T) {
		out := handle(t, `{"jsonrpc": "2.0", "id": 2, "method": "tools/list"}`)
		result, ok := out["result"].(map[string]interface{})
		require.True(t, ok, "%v", out)
		data, err := json.Marshal(result["tools"])
		require.NoError(t, err)
		assert.ElementsMatch(t, wantTools, toolNames(t, data))
	})

	t.Run("tools/call", func(t *testing.T) {
		out := handle(t, `{"jsonrpc": "2.0", "id": 3, "method": "tools/call", "params": {
			"name": "fetch_docs", "arguments": {"topic": "Go channels"}
		}}`)
		result, ok := out["result"].(map[string]interface{})
		require.True(t, ok, "%v", out)
		content := result["content"].([]interface{})
		require.Len(t, content, 1)
		block := content[0].(map[string]interface{})
		assert.Equal(t, "text", block["type"])
		assert.Equal(t, "📚 **Documentation: Go channels**\n\nChannels connect goroutines.", block["text"])
		assert.Equal(t, 1, provider.CallCount())
	})

	t.Run("tools/call failure is text", func(t *testing.T) {
		out := handle(t, `{"jsonrpc": "2.0", "id": 4, "method": "tools/call", "params": {
			"name": "search_code_examples", "arguments": {"query": "worker pool"}
		}}`)
		result, ok := out["result"].(map[string]interface{})
		require.True(t, ok, "%v", out)
		block := result["content"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, `Error: missing required argument "language"`, block["text"])
	})

	t.Run("tools/call unknown tool is text", func(t *testing.T) {
		out := handle(t, `{"jsonrpc": "2.0", "id": 5, "method": "tools/call", "params": {"name": "foo"}}`)
		assert.Nil(t, out["error"])
		assert.EqualValues(t, 5, out["id"])
		result, ok := out["result"].(map[string]interface{})
		require.True(t, ok, "%v", out)
		content := result["content"].([]interface{})
		require.Len(t, content, 1)
		block := content[0].(map[string]interface{})
		assert.Equal(t, "text", block["type"])
		assert.Equal(t, "Unknown tool: foo", block["text"])
	})
}

func Test_commandLine_serveStdio(t *testing.T) {
	cli, _, stdout := setup(t)
	cli.stdin = strings.NewReader(strings.Join([]string{
		`{"jsonrpc": "2.0", "id": 1, "method": "initialize", "params": {"protocolVersion": "2024-11-05", "capabilities": {}, "clientInfo": {"name": "test", "version": "0"}}}`,
		`{"jsonrpc": "2.0", "method": "notifications/initialized"}`,
		``,
		`{"jsonrpc": "2.0", "id": 2, "method": "tools/call", "params": {"name": "foo", "arguments": {}}}`,
		`{not json`,
	}, "\n") + "\n")

	require.NoError(t, cli.run(context.Background(), []string{"serve"}))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3, stdout.String())

	var initResp struct {
		ID     int                    `json:"id"`
		Result map[string]interface{} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &initResp))
	assert.Equal(t, 1, initResp.ID)
	assert.NotNil(t, initResp.Result["serverInfo"])

	var callResp struct {
		ID     int `json:"id"`
		Result struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
		Error interface{} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &callResp))
	assert.Equal(t, 2, callResp.ID)
	assert.Nil(t, callResp.Error)
	require.Len(t, callResp.Result.Content, 1)
	assert.Equal(t, "Unknown tool: foo", callResp.Result.Content[0].Text)

	var parseResp struct {
		Error struct {
			Code int `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &parseResp))
	assert.Equal(t, -32700, parseResp.Error.Code)
}

func Test_httpServer(t *testing.T) {
	cli, _, _ := setup(t, llm.MockResponse{Content: "Use a buffered channel."})
	app := newHTTPServer(cli.dispatcher, false)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)
		return rec
	}
	text := func(t *testing.T, rec *httptest.ResponseRecorder) string {
		t.Helper()
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var res toolCallResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		require.Len(t, res.Content, 1)
		assert.Equal(t, "text", res.Content[0].Type)
		return res.Content[0].Text
	}

	t.Run("list", func(t *testing.T) {
		rec := do(http.MethodGet, "/tools", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, wantTools, toolNames(t, rec.Body.Bytes()))
	})
	t.Run("name required", func(t *testing.T) {
		rec := do(http.MethodPost, "/tools/call", `{"arguments": {}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error": "name is required"}`, rec.Body.String())
	})
	t.Run("bad body", func(t *testing.T) {
		rec := do(http.MethodPost, "/tools/call", `[`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("unknown tool", func(t *testing.T) {
		assert.Equal(t, "Unknown tool: foo", text(t, do(http.MethodPost, "/tools/call", `{"name": "foo"}`)))
	})
	t.Run("call", func(t *testing.T) {
		got := text(t, do(http.MethodPost, "/tools/call", `{"name": "explain_concept", "arguments": {"concept": "channels"}}`))
		assert.Equal(t, "🧠 **Concept Explanation: channels** (Level: Intermediate)\n\nUse a buffered channel.", got)
	})
}
