package observability

import (
	"time"

	"github.com/naota/taglib/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger swaps the global logger for one tagged with app and listen. The
// ID3_LOG_* colour and timestamp settings still apply.
func InitLogger(app, listen string) zerolog.Logger {
	cfg := logging.Resolve(logging.ProfileRuntime)
	logger := newLogger(cfg, app, listen)
	log.Logger = logger
	return logger
}

func newLogger(cfg logging.Config, app, listen string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        cfg.Out,
		NoColor:    cfg.NoColor,
		TimeFormat: time.RFC3339,
	}
	ctx := zerolog.New(output).With().Str("app", app)
	if listen != "" {
		ctx = ctx.Str("listen", listen)
	}
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Logger()
}
