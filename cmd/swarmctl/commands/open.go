package commands

import (
	"context"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Gunvolt24/partswarm/config"
	"github.com/Gunvolt24/partswarm/internal/app"
	"github.com/Gunvolt24/partswarm/internal/ports"
	"github.com/Gunvolt24/partswarm/pkg/logger"
	"github.com/Gunvolt24/partswarm/pkg/metrics"
)

// OpenCore — узел Swarm в процессе CLI с конфигурацией сервера; флаги перекрывают окружение.
func OpenCore(ctx context.Context, opts *Options) (ports.LookupService, func(), error) {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if opts.VendorsFile != "" {
		cfg.Lookup.VendorsFile = opts.VendorsFile
	}
	if opts.Mode != "" {
		cfg.Lookup.Mode = opts.Mode
	}

	vendors, err := config.LoadVendors(cfg.Lookup.VendorsFile)
	if err != nil {
		return nil, nil, err
	}

	log, closeLog, err := cliLogger(opts.Verbose)
	if err != nil {
		return nil, nil, err
	}
	metrics.MustRegister()

	core, cleanup, err := app.BuildCore(ctx, &cfg, vendors, log)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	return core.Lookup, func() {
		cleanup()
		closeLog()
	}, nil
}

// cliLogger — без --verbose логи координатора не печатаются.
func cliLogger(verbose bool) (ports.Logger, func(), error) {
	if !verbose {
		return logger.NewFromZap(zap.NewNop()), func() {}, nil
	}
	l, cleanup, err := logger.NewZapLogger(false)
	if err != nil {
		return nil, nil, err
	}
	return l, func() { _ = cleanup() }, nil
}
