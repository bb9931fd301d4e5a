// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Dagaz tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/report"
	"github.com/starford/dagaz/internal/storage"
)

// Server wraps the MCP server with Dagaz tools.
type Server struct {
	mcp   *server.MCPServer
	store storage.Provider
	db    *index.DB
	ctrl  *report.Controller
}

// New creates a new MCP server with all Dagaz tools registered.
func New(store storage.Provider, db *index.DB, ctrl *report.Controller) *Server {
	s := &Server{store: store, db: db, ctrl: ctrl}

	s.mcp = server.NewMCPServer(
		"Dagaz",
		report.Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("get_dashboard",
		mcp.WithDescription("Get the rendered dashboard report as plain text. "+
			"The report includes vault statistics, sticky pages, recently modified notes, "+
			"orphan counts, and most-linked notes."),
	), s.getDashboard)

	s.mcp.AddTool(mcp.NewTool("refresh_dashboard",
		mcp.WithDescription("Re-run the report pipeline against the current index and "+
			"return the freshly rendered dashboard."),
	), s.refreshDashboard)

	s.mcp.AddTool(mcp.NewTool("list_orphaned",
		mcp.WithDescription("List notes that have no incoming and no outgoing links."),
	), s.listOrphaned)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full content of a Markdown note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. folder/note.md)")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("get_backlinks",
		mcp.WithDescription("Find all notes that link to the specified note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the note to find backlinks for")),
	), s.getBacklinks)

	// Resource: the rendered dashboard.
	s.mcp.AddResource(
		mcp.NewResource("dagaz://dashboard", "Dashboard Report",
			mcp.WithResourceDescription("The rendered textual dashboard for the vault."),
			mcp.WithMIMEType("text/plain"),
		),
		s.readDashboardResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) getDashboard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.ctrl.Open().Text()), nil
}

func (s *Server) refreshDashboard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.ctrl.Open()
	if err := s.ctrl.Refresh(s.ctrl.PrimaryName()); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	surf, _ := s.ctrl.Surface(s.ctrl.PrimaryName())
	return mcp.NewToolResultText(surf.Text()), nil
}

func (s *Server) listOrphaned(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := s.db.Select(`
		SELECT path FROM files
		WHERE path NOT IN (SELECT source FROM links)
		  AND path NOT IN (SELECT target FROM links)
		ORDER BY path`)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(rows) == 0 {
		return mcp.NewToolResultText("no orphaned notes"), nil
	}
	var paths []string
	for _, r := range rows {
		if p, ok := r[0].(string); ok {
			paths = append(paths, p)
		}
	}
	return mcp.NewToolResultText(strings.Join(paths, "\n")), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) getBacklinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	bl, err := s.db.Backlinks(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(bl) == 0 {
		return mcp.NewToolResultText("no backlinks found"), nil
	}
	return mcp.NewToolResultText(strings.Join(bl, "\n")), nil
}

func (s *Server) readDashboardResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "dagaz://dashboard",
			MIMEType: "text/plain",
			Text:     s.ctrl.Open().Text(),
		},
	}, nil
}
