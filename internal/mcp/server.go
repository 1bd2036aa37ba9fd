// Package mcp exposes the risk predictor over the Model Context Protocol
// so assistant clients can call it as stdio tools.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/maternal-risk-mcp-server/internal/domain"
)

const (
	serverName    = "maternal-risk-mcp-server"
	serverVersion = "v1.0.0"
)

// Server wraps the MCP protocol server around the risk predictor.
type Server struct {
	mcpServer *mcp.Server
	predictor domain.RiskPredictor
	logger    *logrus.Logger
}

// ServerOption is a functional option for Server.
type ServerOption func(*Server)

// WithLogger sets a custom logger.
func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates an MCP server instance exposing the predictor tools.
func NewServer(predictor domain.RiskPredictor, opts ...ServerOption) *Server {
	server := &Server{
		predictor: predictor,
		logger:    logrus.New(),
	}

	for _, opt := range opts {
		opt(server)
	}

	server.mcpServer = mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	server.registerTools()

	return server
}

// registerTools registers the predictor tools with the MCP SDK.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name: "predict_risk",
		Description: "Assess maternal health risk from clinical measurements. " +
			"Returns a risk score (0-100), a Low/Medium/High category, the " +
			"contributing clinical factors and care recommendations.",
	}, s.handlePredictRisk)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name: "get_model_info",
		Description: "Describe the loaded risk scoring model: model type, " +
			"feature set, validation accuracy and training corpus size.",
	}, s.handleGetModelInfo)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name: "list_example_profiles",
		Description: "List the fixed demonstration patient profiles covering " +
			"the Low, Medium and High risk bands.",
	}, s.handleListExampleProfiles)

	s.logger.WithField("tool_count", 3).Info("Registered MCP tools")
}

// Start serves MCP requests on stdio until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting maternal risk MCP server on stdio")

	if err := s.mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}
