package mcp

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jcdickinson/seedoc/internal/batch"
	"github.com/jcdickinson/seedoc/internal/paths"
	"github.com/jcdickinson/seedoc/internal/reflection"
	"github.com/jcdickinson/seedoc/internal/see"
)

//go:embed instructions.md
var instructions string

type Server struct {
	mcpServer *server.MCPServer
	project   *reflection.Project
	rewriter  *see.Rewriter
	renderer  *batch.Renderer
}

func NewServer(project *reflection.Project, rewriter *see.Rewriter, renderer *batch.Renderer) *Server {
	s := &Server{project: project, rewriter: rewriter, renderer: renderer}

	mcpServer := server.NewMCPServer(
		"seedoc",
		"0.1.0",
		server.WithInstructions(instructions),
		server.WithToolCapabilities(true),
	)

	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("render_description",
			mcp.WithDescription("Render a docblock description to HTML. @see tags are resolved in the scope of the given class and become links."),
			mcp.WithString("class",
				mcp.Description("Fully-qualified class the description belongs to (e.g. \"App\\Models\\User\")"),
				mcp.Required(),
			),
			mcp.WithString("description",
				mcp.Description("Markdown description text"),
				mcp.Required(),
			),
			mcp.WithString("page",
				mcp.Description("Page the HTML will be placed on, relative to the docs root. Defaults to the class page."),
			),
		),
		s.handleRenderDescription,
	)

	mcpServer.AddTool(
		mcp.NewTool("resolve_reference",
			mcp.WithDescription("Resolve a single @see target (class, Class::method, function or URL) in the scope of a class."),
			mcp.WithString("class",
				mcp.Description("Fully-qualified class providing the scope"),
				mcp.Required(),
			),
			mcp.WithString("reference",
				mcp.Description("Reference as written after @see"),
				mcp.Required(),
			),
			mcp.WithString("page",
				mcp.Description("Page links are made relative to. Defaults to the class page."),
			),
		),
		s.handleResolveReference,
	)

	mcpServer.AddTool(
		mcp.NewTool("render_class",
			mcp.WithDescription("Render the description of a class and of each of its methods."),
			mcp.WithString("class",
				mcp.Description("Fully-qualified class name"),
				mcp.Required(),
			),
		),
		s.handleRenderClass,
	)
}

func (s *Server) lookupClass(args map[string]any) (*reflection.Class, *mcp.CallToolResult) {
	name, _ := args["class"].(string)
	if name == "" {
		return nil, mcp.NewToolResultError("missing required parameter: class")
	}
	c, ok := s.project.Lookup(name)
	if !ok {
		return nil, mcp.NewToolResultError(fmt.Sprintf("unknown class: %s", name))
	}
	return c, nil
}

func pageArg(args map[string]any, c *reflection.Class) string {
	if page, ok := args["page"].(string); ok && page != "" {
		return page
	}
	return paths.ClassPage(c.Name())
}

func (s *Server) handleRenderDescription(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	c, errResult := s.lookupClass(args)
	if errResult != nil {
		return errResult, nil
	}
	desc, ok := args["description"].(string)
	if !ok {
		return mcp.NewToolResultError("missing required parameter: description"), nil
	}

	html, _, err := s.renderer.Render(c, desc, pageArg(args, c))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}
	return mcp.NewToolResultText(html), nil
}

// Resolution is the resolve_reference result.
type Resolution struct {
	Reference string `json:"reference"`
	Kind      string `json:"kind"`
	Target    string `json:"target,omitempty"`
	Title     string `json:"title"`
	Href      string `json:"href,omitempty"`
}

func (s *Server) handleResolveReference(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	c, errResult := s.lookupClass(args)
	if errResult != nil {
		return errResult, nil
	}
	token, _ := args["reference"].(string)
	if token == "" {
		return mcp.NewToolResultError("missing required parameter: reference"), nil
	}

	ref := s.rewriter.Resolver().Resolve(token, c)
	res := Resolution{
		Reference: token,
		Kind:      ref.Kind.String(),
		Title:     see.FormatTitle(ref, c, ""),
		Href:      s.rewriter.Href(ref, see.RenderContext{paths.PageKey: pageArg(args, c)}),
	}
	switch ref.Kind {
	case see.ClassRef:
		res.Target = ref.Class.Name()
	case see.MethodRef:
		res.Target = ref.Method.Class().Name() + "::" + ref.Method.Name()
	case see.ExternalRef:
		res.Target = ref.URL
	}

	resultJSON, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) handleRenderClass(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, errResult := s.lookupClass(req.GetArguments())
	if errResult != nil {
		return errResult, nil
	}

	results, err := s.renderer.RenderClass(ctx, c)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}

	resultJSON, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}
