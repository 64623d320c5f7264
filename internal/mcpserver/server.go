package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/codegraphhq/codegraph/internal/project"
)

// Tool is one assistant-callable operation: its protocol-visible
// description plus the handler that actually runs the query.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
	Handler     func(ctx context.Context, s *Server, params json.RawMessage) (interface{}, error)
}

// Server is the stdio MCP server: one registry of opened, indexed
// projects (keyed by resolved root) shared across every tool call for
// the life of the process, so a long assistant session doesn't pay to
// re-index on every call.
type Server struct {
	defaultRoot string
	log         *slog.Logger

	mu       sync.Mutex
	projects map[string]*project.Project

	tools map[string]*Tool

	stdin  io.Reader
	stdout io.Writer
}

// New constructs a Server rooted at defaultRoot — the project used when
// a tool call omits project_path.
func New(defaultRoot string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		defaultRoot: defaultRoot,
		log:         log,
		projects:    make(map[string]*project.Project),
		tools:       make(map[string]*Tool),
		stdin:       os.Stdin,
		stdout:      os.Stdout,
	}
	s.registerTools()
	return s
}

// Close releases every project this server opened.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for _, p := range s.projects {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// resolveProject opens and fully indexes the project at path (or the
// server's default root, if path is empty) the first time it's asked
// for, and reuses the same live graph on every later call.
func (s *Server) resolveProject(ctx context.Context, path string) (*project.Project, error) {
	if path == "" {
		path = s.defaultRoot
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("mcpserver: resolve project_path: %w", err)
	}

	s.mu.Lock()
	p, ok := s.projects[abs]
	s.mu.Unlock()
	if ok {
		return p, nil
	}

	p, err = project.Open(abs, s.log)
	if err != nil {
		return nil, err
	}
	if _, err := p.Index(ctx); err != nil {
		p.Close()
		return nil, err
	}

	s.mu.Lock()
	s.projects[abs] = p
	s.mu.Unlock()
	return p, nil
}

// Start runs the request/response loop until ctx is canceled or stdin
// is exhausted.
func (s *Server) Start(ctx context.Context) error {
	decoder := json.NewDecoder(s.stdin)
	encoder := json.NewEncoder(s.stdout)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var req Request
		if err := decoder.Decode(&req); err != nil {
			if err == io.EOF {
				return nil
			}
			s.log.Warn("mcpserver: malformed request", "error", err)
			continue
		}

		resp := s.handleRequest(ctx, &req)
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("mcpserver: encode response: %w", err)
		}
	}
}

func (s *Server) handleRequest(ctx context.Context, req *Request) *Response {
	resp := &Response{JSONRPC: "2.0", ID: req.ID}

	switch req.Method {
	case "initialize":
		resp.Result = map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities":    map[string]interface{}{"tools": map[string]bool{"listChanged": false}},
			"serverInfo":      map[string]string{"name": "codegraph", "version": "0.1.0"},
		}

	case "tools/list":
		resp.Result = s.handleToolsList()

	case "tools/call":
		result, err := s.handleToolCall(ctx, req.Params)
		if err != nil {
			resp.Error = toErrorObj(err)
		} else {
			resp.Result = result
		}

	default:
		resp.Error = &ErrorObj{Code: codeMethodNotFound, Message: fmt.Sprintf("method not found: %s", req.Method)}
	}

	return resp
}

func (s *Server) handleToolsList() interface{} {
	tools := make([]map[string]interface{}, 0, len(s.tools))
	for _, t := range s.tools {
		tools = append(tools, map[string]interface{}{
			"name":        t.Name,
			"description": t.Description,
			"inputSchema": t.InputSchema,
		})
	}
	return map[string]interface{}{"tools": tools}
}

func (s *Server) handleToolCall(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var req struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, fmt.Errorf("mcpserver: parse tool call: %w", err)
	}

	tool, ok := s.tools[req.Name]
	if !ok {
		return nil, fmt.Errorf("tool not found: %s", req.Name)
	}

	result, err := tool.Handler(ctx, s, req.Arguments)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": mustIndent(result)},
		},
	}, nil
}

func (s *Server) registerTool(t *Tool) {
	s.tools[t.Name] = t
}

func toErrorObj(err error) *ErrorObj {
	if nf, ok := err.(*notFoundError); ok {
		return &ErrorObj{
			Code:    codeNotFound,
			Message: nf.Error(),
			Data:    map[string]interface{}{"suggestions": nf.suggestions},
		}
	}
	return &ErrorObj{Code: codeInternal, Message: err.Error()}
}

func mustIndent(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
