package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestTerminalConfirmer(t *testing.T) {
	confirm := func(input string) (bool, string, error) {
		var out bytes.Buffer
		c := &terminalConfirmer{in: bufio.NewReader(strings.NewReader(input)), out: &out}
		ok, err := c.Confirm(context.Background(), "ws01", "install")
		return ok, out.String(), err
	}

	t.Run("yes answers", func(t *testing.T) {
		for _, input := range []string{"y\n", "Y\n", "yes\n", " YES \n"} {
			ok, prompt, err := confirm(input)
			gt.NoError(t, err)
			gt.True(t, ok)
			gt.S(t, prompt).Contains("ws01")
			gt.S(t, prompt).Contains("install")
		}
	})

	t.Run("anything else declines", func(t *testing.T) {
		for _, input := range []string{"n\n", "\n", "maybe\n"} {
			ok, _, err := confirm(input)
			gt.NoError(t, err)
			gt.False(t, ok)
		}
	})

	t.Run("closed stdin is an error", func(t *testing.T) {
		_, _, err := confirm("")
		gt.Error(t, err)
	})
}
