package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmaher/bmorganize/internal/check"
	"github.com/dmaher/bmorganize/internal/config"
	"github.com/dmaher/bmorganize/internal/limiter"
	"github.com/dmaher/bmorganize/internal/report"
)

// Run wires the components and executes the full pipeline:
// parse export -> group duplicates -> probe distinct URLs -> write reports.
func Run(ctx context.Context, cfg config.Config, inputPath string, stdout io.Writer, log *slog.Logger) error {
	cfg = cfg.Clamped()
	if log == nil {
		log = slog.Default()
	}

	p := &Pipeline{
		cfg:     cfg,
		checker: check.New(cfg.Timeout, cfg.HeadFirst, cfg.UserAgent),
		limiter: limiter.New(cfg.Rate, cfg.PerHostRate),
		writer:  report.NewWriter(cfg.OutDir),
		log:     log,
	}

	return p.Run(ctx, inputPath, stdout)
}
