package mcp

import (
	"context"
	"fmt"
	"time"

	"sheq-kpi/internal/config"
	"sheq-kpi/internal/snapshot"
	"sheq-kpi/internal/stats"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	serverName    = "sheq-kpi"
	serverVersion = "0.1.0"
)

// Server answers KPI questions over MCP from the active snapshot.
type Server struct {
	loader              *snapshot.Loader
	store               *snapshot.Store
	kpis                []stats.KPIDefinition
	attentionLimit      int
	enableMermaidCharts bool
	clock               func() time.Time

	loads singleflight.Group
}

// NewServer creates a new MCP server. A nil kpis table means the built-in one.
func NewServer(cfg *config.AppConfig, loader *snapshot.Loader, kpis []stats.KPIDefinition) *Server {
	if kpis == nil {
		kpis = stats.DefaultKPIs()
	}
	limit := cfg.AttentionLimit
	if limit <= 0 {
		limit = stats.DefaultAttentionLimit
	}
	return &Server{
		loader:              loader,
		store:               snapshot.NewStore(),
		kpis:                kpis,
		attentionLimit:      limit,
		enableMermaidCharts: cfg.EnableMermaidCharts,
		clock:               time.Now,
	}
}

// Run serves MCP over stdio until the client disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	server := s.NewMCPServer()
	log.Info().Str("source", s.loader.Source()).Msg("Starting MCP server on stdio")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server stopped: %w", err)
	}
	return nil
}

// NewMCPServer builds the SDK server with every tool registered.
func (s *Server) NewMCPServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	s.registerTools(server)
	return server
}

// document returns the active snapshot, loading it on first use.
func (s *Server) document(ctx context.Context) (*snapshot.Document, error) {
	if doc := s.store.Current(); doc != nil {
		return doc, nil
	}
	return s.reload(ctx)
}

// reload replaces the active snapshot. Concurrent callers share a single load.
func (s *Server) reload(ctx context.Context) (*snapshot.Document, error) {
	v, err, _ := s.loads.Do("snapshot", func() (any, error) {
		doc, err := s.loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		s.store.Replace(doc, s.loader.Source())
		log.Info().
			Int("actions", len(doc.SafetyActions)).
			Int("incidents", len(doc.Incidents)).
			Msg("KPI snapshot loaded")
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*snapshot.Document), nil
}

// session binds the active snapshot to a filter and evaluation time.
func (s *Server) session(ctx context.Context, criteria stats.Criteria, now string) (*stats.AnalysisSession, error) {
	evalTime, err := s.evaluationTime(now)
	if err != nil {
		return nil, err
	}
	doc, err := s.document(ctx)
	if err != nil {
		return nil, err
	}
	return stats.NewAnalysisSession(doc.SafetyActions, doc.Incidents, criteria, evalTime, s.kpis), nil
}
