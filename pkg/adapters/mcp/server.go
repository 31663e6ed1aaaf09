package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/pkg/args"
	"github.com/aretw0/quill/pkg/record"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TokenizeResponse is the structured result of the tokenize tool.
type TokenizeResponse struct {
	Tokens []string `json:"tokens" jsonschema_description:"Tokens in order; quoted tokens without their quotes"`
}

// DescribeResponse is the structured result of the describe_record tool.
type DescribeResponse struct {
	Results []quill.Description `json:"results" jsonschema_description:"One description per record"`
}

// Engine defines the operations the MCP server exposes.
type Engine interface {
	Tokenize(line string) []string
	Classify(raw string) quill.Classification
	Describe(r *record.Record) quill.Description
	Scripts(ctx context.Context) ([]string, error)
	Run(ctx context.Context, name string) (*quill.Report, error)
}

// Server wraps the quill Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("quill-mcp", strings.TrimSpace(quill.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://localhost" + addr
	if !strings.HasPrefix(addr, ":") {
		baseURL = "http://" + addr
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	tokenizeTool := mcp.NewTool("tokenize",
		mcp.WithDescription("Split a command line into argument tokens. Quotes group words; an opening quote must start a word and a closing quote must end one."),
		mcp.WithString("line", mcp.Required(), mcp.Description("The raw command line")),
		mcp.WithOutputSchema[TokenizeResponse](),
	)
	s.mcpServer.AddTool(tokenizeTool, mcp.NewStructuredToolHandler(s.handleTokenize))

	classifyTool := mcp.NewTool("classify_number",
		mcp.WithDescription("Report whether an argument value is decimal-shaped, integer-shaped or boolean. A prefix before the first ':' is split off."),
		mcp.WithString("value", mcp.Required(), mcp.Description("The raw argument, e.g. qty:3")),
		mcp.WithOutputSchema[quill.Classification](),
	)
	s.mcpServer.AddTool(classifyTool, mcp.NewStructuredToolHandler(s.handleClassify))

	describeTool := mcp.NewTool("describe_record",
		mcp.WithDescription("Describe one record, or a JSON/YAML list of records, as [id=content;...] strings."),
		mcp.WithString("record", mcp.Required(), mcp.Description(`Record document, e.g. {"kind":"item","id":"i1","fields":{"material":"stone"}}`)),
		mcp.WithOutputSchema[DescribeResponse](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribe))

	s.mcpServer.AddTool(mcp.NewTool("run_script",
		mcp.WithDescription("Interpret every line of a stored script and report commands and arguments."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Script name")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := request.GetString("name", "")
		report, err := s.engine.Run(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("run failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(report)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleTokenize(ctx context.Context, request mcp.CallToolRequest, params map[string]interface{}) (TokenizeResponse, error) {
	line, ok := params["line"].(string)
	if !ok {
		return TokenizeResponse{}, fmt.Errorf("line must be a string")
	}
	return TokenizeResponse{Tokens: s.engine.Tokenize(line)}, nil
}

func (s *Server) handleClassify(ctx context.Context, request mcp.CallToolRequest, params map[string]interface{}) (quill.Classification, error) {
	value, ok := params["value"].(string)
	if !ok {
		return quill.Classification{}, fmt.Errorf("value must be a string")
	}
	return s.engine.Classify(value), nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, params map[string]interface{}) (DescribeResponse, error) {
	doc, ok := params["record"].(string)
	if !ok {
		return DescribeResponse{}, fmt.Errorf("record must be a string")
	}
	records, err := record.Parse([]byte(doc))
	if err != nil {
		return DescribeResponse{}, fmt.Errorf("invalid record: %w", err)
	}

	resp := DescribeResponse{Results: make([]quill.Description, 0, len(records))}
	for _, r := range records {
		resp.Results = append(resp.Results, s.engine.Describe(r))
	}
	return resp, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("quill://scripts", "Available Scripts",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.engine.Scripts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list scripts: %w", err)
		}
		jsonBytes, _ := json.Marshal(names)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "quill://scripts",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource("quill://colors", "Debug Color Tags",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text := strings.Join([]string{args.TagGreen + " names", args.TagYellow + " values", args.TagAqua + " unique ids"}, "\n")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: "quill://colors", MIMEType: "text/plain", Text: text},
		}, nil
	})
}
