package tools

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	. "github.com/li7hai26/torna-mcp/internal/logging"
	"github.com/li7hai26/torna-mcp/internal/render"
	"github.com/li7hai26/torna-mcp/internal/torna"
)

// Registry binds the catalog to a Torna client and registers it on an
// MCP server.
type Registry struct {
	client *torna.Client
	specs  []Spec
}

// NewRegistry creates a registry over the full catalog.
func NewRegistry(client *torna.Client) *Registry {
	return &Registry{
		client: client,
		specs:  Catalog(),
	}
}

// Count returns the number of tools in the catalog.
func (r *Registry) Count() int {
	return len(r.specs)
}

// Install registers every catalog entry on s. The shared access_token and
// response_format arguments are appended to each tool's own schema.
func (r *Registry) Install(s *server.MCPServer) {
	for _, spec := range r.specs {
		opts := []mcp.ToolOption{
			mcp.WithDescription(spec.Description),
			mcp.WithTitleAnnotation(spec.Title),
			mcp.WithReadOnlyHintAnnotation(spec.ReadOnly),
			mcp.WithDestructiveHintAnnotation(spec.Destructive),
			mcp.WithIdempotentHintAnnotation(spec.Idempotent),
			mcp.WithOpenWorldHintAnnotation(true),
		}
		opts = append(opts, spec.Options...)
		opts = append(opts,
			mcp.WithString("access_token", mcp.Required(), mcp.Description("Module token for authentication")),
			mcp.WithString("response_format", mcp.Description("Response format: 'markdown' or 'json'"), mcp.Enum("markdown", "json"), mcp.DefaultString("markdown")),
		)
		s.AddTool(mcp.NewTool(spec.Name, opts...), r.handler(spec))
		L_trace("tools: registered", "tool", spec.Name)
	}
	L_debug("tools: catalog installed", "count", len(r.specs))
}

// handler returns the shared dispatch path bound to one catalog entry:
// parse format, require token, build, encode, one exchange, render.
// Argument violations surface as tool errors; everything past the build
// step comes back as a classified message string.
func (r *Registry) handler(spec Spec) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		callID := uuid.New().String()[:8]
		args := Args(req.GetArguments())

		format := render.ParseFormat(args.String("response_format", "markdown"))

		token := args.String("access_token", "")
		if token == "" {
			return mcp.NewToolResultText(torna.NewConfigError("access_token is required").UserMessage()), nil
		}

		desc, err := spec.Build(args)
		if err != nil {
			L_warn("tools: invalid arguments", "call", callID, "tool", spec.Name, "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		L_debug("tools: dispatch", "call", callID, "tool", spec.Name, "interface", desc.Name, "token", torna.MaskToken(token))

		env, err := torna.Encode(desc, token)
		if err != nil {
			L_error("tools: encode failed", "call", callID, "tool", spec.Name, "error", err)
			return mcp.NewToolResultText(torna.Classify(err).UserMessage()), nil
		}

		resp, err := r.client.Do(ctx, env)
		if err != nil {
			cerr := torna.Classify(err)
			L_warn("tools: call failed", "call", callID, "tool", spec.Name, "kind", cerr.Kind, "error", err)
			return mcp.NewToolResultText(cerr.UserMessage()), nil
		}

		text := render.Render(resp, format, desc.Name)
		L_elapsed(start, "tools: call completed", "call", callID, "tool", spec.Name, "code", string(resp.Code), "bytes", len(text))
		return mcp.NewToolResultText(text), nil
	}
}
