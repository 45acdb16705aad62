package config

import (
	"log/slog"

	"github.com/shiftward/sweep/pkg/service/winrm"
	"github.com/urfave/cli/v3"
)

// WinRM holds the remote shell configuration shared by host commands
type WinRM struct {
	User     string
	Password string
	Port     int
	HTTPS    bool
	Insecure bool
	DC       string
}

// Flags returns CLI flags for WinRM configuration
func (w *WinRM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "winrm-user",
			Usage:       "WinRM user (DOMAIN\\user)",
			Category:    "WinRM",
			Sources:     cli.EnvVars("SWEEP_WINRM_USER"),
			Destination: &w.User,
		},
		&cli.StringFlag{
			Name:        "winrm-password",
			Usage:       "WinRM password",
			Category:    "WinRM",
			Sources:     cli.EnvVars("SWEEP_WINRM_PASSWORD"),
			Destination: &w.Password,
		},
		&cli.IntFlag{
			Name:        "winrm-port",
			Usage:       "WinRM port (0 selects 5985, or 5986 with --winrm-https)",
			Category:    "WinRM",
			Sources:     cli.EnvVars("SWEEP_WINRM_PORT"),
			Destination: &w.Port,
		},
		&cli.BoolFlag{
			Name:        "winrm-https",
			Usage:       "Connect over HTTPS",
			Category:    "WinRM",
			Sources:     cli.EnvVars("SWEEP_WINRM_HTTPS"),
			Destination: &w.HTTPS,
		},
		&cli.BoolFlag{
			Name:        "winrm-insecure",
			Usage:       "Skip TLS certificate verification",
			Category:    "WinRM",
			Sources:     cli.EnvVars("SWEEP_WINRM_INSECURE"),
			Destination: &w.Insecure,
		},
		&cli.StringFlag{
			Name:        "dc",
			Usage:       "Domain controller for AD group resolution and GPO changes",
			Category:    "WinRM",
			Sources:     cli.EnvVars("SWEEP_DC"),
			Destination: &w.DC,
		},
	}
}

// Configure creates the WinRM session manager
func (w *WinRM) Configure() *winrm.Manager {
	return winrm.New(winrm.Config{
		Username:   w.User,
		Password:   w.Password,
		Port:       w.Port,
		UseSSL:     w.HTTPS,
		SkipVerify: w.Insecure,
	})
}

// IsConfigured checks if WinRM credentials are present
func (w *WinRM) IsConfigured() bool {
	return w.User != "" && w.Password != ""
}

// LogValue returns structured log value (credentials masked)
func (w WinRM) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("user", w.User),
		slog.Bool("has_password", w.Password != ""),
		slog.Int("port", w.Port),
		slog.Bool("https", w.HTTPS),
		slog.Bool("insecure", w.Insecure),
		slog.String("dc", w.DC),
	)
}
