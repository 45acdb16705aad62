package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shiftward/sweep/pkg/domain/types"
	"golang.org/x/term"
)

// terminalConfirmer prompts on stderr and reads y/N from stdin.
// Anything but y or yes declines, so an accidental Enter is safe.
type terminalConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalConfirmer() (*terminalConfirmer, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, goerr.New("--confirm needs an interactive terminal; use --dry-run in scripts")
	}
	return &terminalConfirmer{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stderr,
	}, nil
}

func (c *terminalConfirmer) Confirm(ctx context.Context, id types.Identity, action types.ActionName) (bool, error) {
	fmt.Fprintf(c.out, "apply %s to %s? [y/N]: ", action, id)

	line, err := c.in.ReadString('\n')
	if err != nil {
		return false, goerr.Wrap(err, "failed to read confirmation", goerr.V("identity", id))
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
