package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
)

// Handle reports a fatal application error through the context logger.
// goerr values attached to the error surface as structured attributes.
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)
	logger.Error("command failed", "error", err)
}
