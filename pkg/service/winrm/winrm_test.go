package winrm

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/shiftward/sweep/pkg/domain/model"
)

func TestEncodePowerShell(t *testing.T) {
	// PowerShell -EncodedCommand expects base64 over UTF-16LE.
	// "Get-Date" in UTF-16LE: 47 00 65 00 74 00 2D 00 44 00 61 00 74 00 65 00
	gt.Equal(t, encodePowerShell("Get-Date"), "RwBlAHQALQBEAGEAdABlAA==")

	// Non-ASCII must survive as real UTF-16 code units
	gt.Equal(t, encodePowerShell("Ω"), "qQM=")

	gt.Equal(t, encodePowerShell(""), "")
}

func TestQuote(t *testing.T) {
	gt.Equal(t, Quote("Spooler"), "'Spooler'")
	gt.Equal(t, Quote("O'Brien"), "'O''Brien'")
	gt.Equal(t, Quote(""), "''")
}

func TestManagerLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("open fails without credentials", func(t *testing.T) {
		m := New(Config{})
		gt.Error(t, m.Open(ctx))
	})

	t.Run("open is idempotent", func(t *testing.T) {
		m := New(Config{Username: `CORP\admin`, Password: "secret"})
		gt.NoError(t, m.Open(ctx))
		gt.NoError(t, m.Open(ctx))
		gt.Equal(t, m.ClientCount(), 0)
	})

	t.Run("run before open is rejected", func(t *testing.T) {
		m := New(Config{Username: `CORP\admin`, Password: "secret"})
		_, err := m.Run(ctx, "ws01.corp.local", "Get-Date")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrSessionClosed))
	})

	t.Run("run after close is rejected", func(t *testing.T) {
		m := New(Config{Username: `CORP\admin`, Password: "secret"})
		gt.NoError(t, m.Open(ctx))
		gt.NoError(t, m.Close())
		_, err := m.Run(ctx, "ws01.corp.local", "Get-Date")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrSessionClosed))
	})

	t.Run("close twice is harmless", func(t *testing.T) {
		m := New(Config{Username: `CORP\admin`, Password: "secret"})
		gt.NoError(t, m.Open(ctx))
		gt.NoError(t, m.Close())
		gt.NoError(t, m.Close())
	})
}
