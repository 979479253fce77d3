package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Spruttybangbang/aim25s-website/internal/api"
	"github.com/Spruttybangbang/aim25s-website/internal/catalog"
	"github.com/Spruttybangbang/aim25s-website/internal/core/config"
	"github.com/Spruttybangbang/aim25s-website/internal/core/logging"
	"github.com/Spruttybangbang/aim25s-website/internal/core/styles"
	"github.com/Spruttybangbang/aim25s-website/internal/data/db"
	"github.com/Spruttybangbang/aim25s-website/internal/data/stores"
	"github.com/Spruttybangbang/aim25s-website/internal/data/sweep"
	"github.com/Spruttybangbang/aim25s-website/pkg/logutils"
	"github.com/Spruttybangbang/aim25s-website/pkg/utils"
)

const sweepInterval = 5 * time.Minute

// Runtime owns the resources opened for a single invocation.
type Runtime struct {
	logCloser func()
	database  *db.DB
	stopSweep func()
}

// Open loads configuration, sets up logging and opens the cache and the
// catalog. The results are stored on flags for the commands to use.
func Open(ctx context.Context, flags *Flags) (*Runtime, error) {
	rt := &Runtime{}

	cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
	if err != nil {
		return rt, fmt.Errorf("load config: %w", err)
	}
	if flags.APIURL != "" {
		cfg.API.BaseURL = flags.APIURL
		if err := cfg.Validate(); err != nil {
			return rt, fmt.Errorf("invalid --api-url: %w", err)
		}
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFile != "" {
		cfg.Log.File = flags.LogFile
	}
	flags.Config = cfg

	// The TUI owns the terminal, so without a log file warnings are held
	// back and printed once it exits.
	var (
		fallback io.Writer = os.Stderr
		level              = cfg.Log.Level
	)
	if flags.Interactive && cfg.Log.File == "" {
		flags.Deferred = &utils.DeferredWriter{}
		fallback = flags.Deferred
		if lvl, err := zerolog.ParseLevel(level); err == nil && lvl < zerolog.WarnLevel {
			level = zerolog.WarnLevel.String()
		}
	}

	logger, closer, err := logutils.New(level, cfg.Log.File, fallback)
	if err != nil {
		return rt, fmt.Errorf("setup logger: %w", err)
	}
	log.Logger = logger
	rt.logCloser = closer

	styles.SetThemeByName(cfg.UI.Theme)

	var store *stores.KVStore
	if cfg.Cache.Enabled() {
		rt.database, err = openCache(cfg.CacheFile())
		if err != nil {
			// The cache is an optimisation; run uncached rather than fail.
			log.Warn().Err(err).Str("path", cfg.CacheFile()).Msg("cache unavailable")
		} else {
			store = stores.NewKVStore(rt.database)

			rt.stopSweep = sweep.Go(ctx, store, sweepInterval, logging.Component("sweep"))
		}
	}

	client, err := api.New(cfg.API.BaseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		api.WithLogger(logging.Component("api")),
		api.WithRateLimit(cfg.API.RateLimit, cfg.API.Burst),
		api.WithRetry(cfg.API.RetryMaxElapsed),
		api.WithUserAgent("aim25s/"+flags.Build.Version),
		api.WithCompanyScopedReports(cfg.API.CompanyScopedReports),
	)
	if err != nil {
		return rt, fmt.Errorf("create api client: %w", err)
	}

	// A typed nil *KVStore must not reach the kv.KV interface.
	if store != nil {
		flags.Catalog = catalog.New(client, store, cfg.Cache.TTL, logging.Component("catalog"))
	} else {
		flags.Catalog = catalog.New(client, nil, 0, logging.Component("catalog"))
	}

	return rt, nil
}

// openCache opens the cache database, moving an unreadable file aside once.
func openCache(path string) (*db.DB, error) {
	database, err := db.Open(path, db.DefaultOpenOptions())
	if err == nil || !stores.IsCorruptionError(err) {
		return database, err
	}

	backup, rerr := stores.RecoverFromCorruption(path)
	if rerr != nil {
		return nil, fmt.Errorf("recover cache: %w", rerr)
	}
	log.Warn().Str("backup", backup).Msg("cache file was corrupt and has been moved aside")

	return db.Open(path, db.DefaultOpenOptions())
}

// Close releases everything Open acquired. It is safe on a partial Runtime.
func (rt *Runtime) Close() error {
	if rt == nil {
		return nil
	}
	// The sweeper must be gone before the database closes under it.
	if rt.stopSweep != nil {
		rt.stopSweep()
	}

	var err error
	if rt.database != nil {
		if err = rt.database.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close cache")
		}
	}

	if rt.logCloser != nil {
		rt.logCloser()
	}
	return err
}
