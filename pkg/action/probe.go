package action

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
)

const defaultProbeTimeout = 5 * time.Second

// ProbeParams sets the port to probe and how long to wait per host
type ProbeParams struct {
	Port    int    `json:"port"`
	Timeout string `json:"timeout,omitempty"`
}

// Probe checks TCP reachability of each host in the batch, which is how
// a sweep is sanity-checked before one that changes things. Identities
// are hostnames; an unreachable host is that item's failure.
type Probe struct {
	params  ProbeParams
	timeout time.Duration
}

// NewProbe validates params and builds the action
func NewProbe(params ProbeParams) (*Probe, error) {
	if params.Port <= 0 || params.Port > 65535 {
		return nil, goerr.New("invalid port", goerr.V("port", params.Port))
	}
	timeout := defaultProbeTimeout
	if params.Timeout != "" {
		parsed, err := time.ParseDuration(params.Timeout)
		if err != nil || parsed <= 0 {
			return nil, goerr.New("invalid timeout", goerr.V("timeout", params.Timeout))
		}
		timeout = parsed
	}
	return &Probe{params: params, timeout: timeout}, nil
}

func (a *Probe) Name() types.ActionName { return NameProbe }

func (a *Probe) Params() any { return a.params }

func (a *Probe) Apply(ctx context.Context, id types.Identity) (model.ApplyReport, error) {
	addr := net.JoinHostPort(id.String(), strconv.Itoa(a.params.Port))

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return model.ApplyReport{}, goerr.Wrap(err, "host unreachable", goerr.V("addr", addr))
	}
	_ = conn.Close()

	elapsed := time.Since(start).Round(time.Millisecond)
	return model.ApplyReport{Detail: fmt.Sprintf("tcp %s in %s", addr, elapsed)}, nil
}
