package repomanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/placementportal/internal/logging"
	"github.com/pressly/goose/v3"
)

// gooseLogger forwards goose progress lines to a structured logger so they
// land in the same stream as the rest of the service output.
type gooseLogger struct {
	ctx    context.Context
	logger logging.Logger
}

var _ goose.Logger = gooseLogger{}

func (g gooseLogger) Printf(format string, v ...any) {
	g.logger.Info(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}

// Fatalf logs at error level only; the failing goose call still returns an
// error to RunMigrations.
func (g gooseLogger) Fatalf(format string, v ...any) {
	g.logger.Error(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}
