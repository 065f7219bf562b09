// Package mcp exposes the documentation engine over the Model Context
// Protocol on stdio.
package mcp

import (
	"github.com/docdex/docdex"
	"github.com/mark3labs/mcp-go/server"
)

const (
	// ServerName is the server name announced to clients.
	ServerName = "docdex"
	// ServerVersion is the advertised server version.
	ServerVersion = "0.1.0"
)

// Server wraps the stdio MCP server with the engine services.
type Server struct {
	mcp      *server.MCPServer
	searcher docdex.Searcher
	analyzer docdex.Analyzer
	gate     *ToolGate
}

// NewServer creates an MCP server exposing the searcher and analyzer as
// tools.
func NewServer(searcher docdex.Searcher, analyzer docdex.Analyzer) *Server {
	s := &Server{
		mcp:      server.NewMCPServer(ServerName, ServerVersion),
		searcher: searcher,
		analyzer: analyzer,
		gate:     NewToolGate(RateLimitCalls, RateLimitWindow),
	}
	s.registerTools()
	return s
}

// Serve runs the server on stdio and blocks until the client
// disconnects.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

// registerTools registers every tool with its handler.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchDocsTool(), s.handleSearchDocs)
	s.mcp.AddTool(listDocsetsTool(), s.handleListDocsets)
	s.mcp.AddTool(getDocContentTool(), s.handleGetDocContent)
	s.mcp.AddTool(analyzeProjectContextTool(), s.handleAnalyzeProjectContext)
	s.mcp.AddTool(getProjectRelevantDocsTool(), s.handleGetProjectRelevantDocs)
	s.mcp.AddTool(getMigrationDocsTool(), s.handleGetMigrationDocs)
	s.mcp.AddTool(getLatestAPIReferenceTool(), s.handleGetLatestAPIReference)
	s.mcp.AddTool(invalidateCacheTool(), s.handleInvalidateCache)
}
