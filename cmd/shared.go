package cmd

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/qwed-ai/qwed-mcp/gateway"
	gatewayconfig "github.com/qwed-ai/qwed-mcp/gateway/config"
)

var (
	cfgPath string

	svcOnce sync.Once
	svcInst *gateway.Service
	svcErr  error
)

// setConfigPath remembers the CLI-level -f/--config parameter so that the
// service singleton can be created lazily by whichever sub-command is executed
// first.
func setConfigPath(p string) { cfgPath = p }

// serviceSingleton initialises a gateway.Service only once and reuses the
// instance across sub-commands within the same CLI invocation.
func serviceSingleton() (*gateway.Service, error) {
	svcOnce.Do(func() {
		var cfg *gatewayconfig.Config
		if cfgPath != "" {
			cfg, svcErr = gatewayconfig.Load(cfgPath)
			if svcErr != nil {
				return
			}
		}
		svcInst, svcErr = gateway.New(context.Background(),
			gateway.WithConfig(cfg),
			gateway.WithLogger(newLogger(cfg)))
	})
	return svcInst, svcErr
}

// newLogger builds the process logger from the config's log section; the
// default is text on stderr at info level.
func newLogger(cfg *gatewayconfig.Config) *slog.Logger {
	level := slog.LevelInfo
	format := ""
	if cfg != nil && cfg.Log != nil {
		format = cfg.Log.Format
		switch strings.ToLower(cfg.Log.Level) {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, handlerOpts))
}
