package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dshills/ncbi-mcp/internal/ncbi"
)

const (
	// ServerName is the MCP server name
	ServerName = "ncbi-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp    *server.MCPServer
	client *ncbi.Client
	log    *zap.Logger
}

// NewServer creates a new MCP server instance around an already-constructed
// NCBI client. The client carries the single shared rate limiter, so all
// tools registered here share one outbound request budget.
func NewServer(client *ncbi.Client, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
		server.WithLogging(),
		server.WithRecovery(),
	)

	s := &Server{
		mcp:    mcpServer,
		client: client,
		log:    log,
	}

	s.registerTools()
	s.registerResources()

	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.client.Close() }()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(searchNCBITool(), s.handleSearchNCBI)
	s.mcp.AddTool(fetchRecordsTool(), s.handleFetchRecords)
	s.mcp.AddTool(summarizeRecordsTool(), s.handleSummarizeRecords)
	s.mcp.AddTool(findRelatedRecordsTool(), s.handleFindRelatedRecords)
	s.mcp.AddTool(blastSearchTool(), s.handleBlastSearch)
	s.mcp.AddTool(listDatabasesTool(), s.handleListDatabases)
	s.mcp.AddTool(getDatabaseInfoTool(), s.handleGetDatabaseInfo)
}
