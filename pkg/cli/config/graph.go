package config

import (
	"log/slog"

	"github.com/shiftward/sweep/pkg/service/graph"
	"github.com/urfave/cli/v3"
)

// Graph holds the Microsoft Graph app registration configuration
type Graph struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}

// Flags returns CLI flags for Graph configuration
func (g *Graph) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "graph-tenant",
			Usage:       "Entra tenant ID",
			Category:    "Graph",
			Sources:     cli.EnvVars("SWEEP_GRAPH_TENANT"),
			Destination: &g.TenantID,
		},
		&cli.StringFlag{
			Name:        "graph-client-id",
			Usage:       "App registration client ID",
			Category:    "Graph",
			Sources:     cli.EnvVars("SWEEP_GRAPH_CLIENT_ID"),
			Destination: &g.ClientID,
		},
		&cli.StringFlag{
			Name:        "graph-client-secret",
			Usage:       "App registration client secret",
			Category:    "Graph",
			Sources:     cli.EnvVars("SWEEP_GRAPH_CLIENT_SECRET"),
			Destination: &g.ClientSecret,
		},
	}
}

// Configure creates the Graph client
func (g *Graph) Configure() *graph.Client {
	return graph.New(graph.Config{
		TenantID:     g.TenantID,
		ClientID:     g.ClientID,
		ClientSecret: g.ClientSecret,
	})
}

// IsConfigured checks if Graph credentials are present
func (g *Graph) IsConfigured() bool {
	return g.TenantID != "" && g.ClientID != "" && g.ClientSecret != ""
}

// LogValue returns structured log value (secret masked)
func (g Graph) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("tenant", g.TenantID),
		slog.String("client_id", g.ClientID),
		slog.Bool("has_secret", g.ClientSecret != ""),
	)
}
