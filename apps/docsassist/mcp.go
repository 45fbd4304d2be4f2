package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/trezcool/codedaily/core"
	"github.com/trezcool/codedaily/core/doctools"
)

// newMCPServer exposes every catalog tool over MCP. Tool failures are returned as text, never as protocol errors.
func newMCPServer(conf core.DocsAssistConfig, d *doctools.Dispatcher) *server.MCPServer {
	s := server.NewMCPServer(
		conf.Name,
		conf.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	for _, tool := range doctools.Catalog() {
		s.AddTool(
			mcp.NewToolWithRawSchema(tool.Name, tool.Description, tool.RawInputSchema()),
			toolHandler(d, tool.Name),
		)
	}
	return s
}

func toolHandler(d *doctools.Dispatcher, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := d.Dispatch(ctx, name, req.GetArguments())
		return mcp.NewToolResultText(res.Text()), nil
	}
}

// toolServer answers tools/call for names outside the catalog with the dispatcher's text.
// MCPServer alone rejects them with an invalid params error.
type toolServer struct {
	*server.MCPServer
	dispatcher *doctools.Dispatcher
}

func newToolServer(conf core.DocsAssistConfig, d *doctools.Dispatcher) *toolServer {
	return &toolServer{
		MCPServer:  newMCPServer(conf, d),
		dispatcher: d,
	}
}

type toolCallMessage struct {
	ID     mcp.RequestId `json:"id"`
	Method string        `json:"method"`
	Params struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	} `json:"params"`
}

func (s *toolServer) HandleMessage(ctx context.Context, message json.RawMessage) mcp.JSONRPCMessage {
	var msg toolCallMessage
	if err := json.Unmarshal(message, &msg); err != nil || msg.Method != string(mcp.MethodToolsCall) {
		return s.MCPServer.HandleMessage(ctx, message)
	}
	if _, ok := doctools.Lookup(msg.Params.Name); ok {
		return s.MCPServer.HandleMessage(ctx, message)
	}

	res := s.dispatcher.Dispatch(ctx, msg.Params.Name, msg.Params.Arguments)
	return mcp.JSONRPCResponse{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      msg.ID,
		Result:  mcp.NewToolResultText(res.Text()),
	}
}

type stdioSession struct {
	notifications chan mcp.JSONRPCNotification
	initialized   atomic.Bool
}

var _ server.ClientSession = (*stdioSession)(nil)

func (s *stdioSession) SessionID() string { return "stdio" }

func (s *stdioSession) NotificationChannel() chan<- mcp.JSONRPCNotification {
	return s.notifications
}

func (s *stdioSession) Initialize()       { s.initialized.Store(true) }
func (s *stdioSession) Initialized() bool { return s.initialized.Load() }

// Listen serves newline delimited JSON-RPC messages until `stdin` is exhausted or ctx is done.
func (s *toolServer) Listen(ctx context.Context, stdin io.Reader, stdout io.Writer, errLog *log.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	session := &stdioSession{notifications: make(chan mcp.JSONRPCNotification, 100)}
	if err := s.RegisterSession(ctx, session); err != nil {
		return fmt.Errorf("register session: %w", err)
	}
	defer s.UnregisterSession(ctx, session.SessionID())
	ctx = s.WithContext(ctx, session)

	var mu sync.Mutex
	write := func(msg mcp.JSONRPCMessage) error {
		data, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		_, err = fmt.Fprintf(stdout, "%s\n", data)
		return err
	}

	go func() {
		for {
			select {
			case n := <-session.notifications:
				if err := write(n); err != nil {
					errLog.Printf("writing notification: %v", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(stdin)
		scanner.Buffer(make([]byte, 64*1024), 10*1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			if strings.TrimSpace(line) == "" {
				continue
			}

			var resp mcp.JSONRPCMessage
			if !json.Valid([]byte(line)) {
				resp = mcp.NewJSONRPCError(mcp.NewRequestId(nil), mcp.PARSE_ERROR, "Parse error", nil)
			} else {
				resp = s.HandleMessage(ctx, json.RawMessage(line))
			}
			if resp == nil {
				continue
			}
			if err := write(resp); err != nil {
				errLog.Printf("writing response: %v", err)
				return err
			}
		}
	}
}
