package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/codequiz/internal/app"
	"github.com/abhisek/codequiz/internal/config"
	"github.com/abhisek/codequiz/internal/logging"
	"github.com/abhisek/codequiz/internal/metrics"
	"github.com/abhisek/codequiz/internal/problem"
	"github.com/abhisek/codequiz/internal/progression"
	"github.com/abhisek/codequiz/internal/screen"
	"github.com/abhisek/codequiz/internal/screens/quiz"
	"github.com/abhisek/codequiz/internal/session"
	"github.com/abhisek/codequiz/internal/store"
	"github.com/abhisek/codequiz/internal/xp"
)

// runtime holds everything a command needs, built from configuration.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *store.Store
	deps    quiz.Deps
	cleanup []func()
}

func (r *runtime) Close() {
	for i := len(r.cleanup) - 1; i >= 0; i-- {
		r.cleanup[i]()
	}
}

// loadConfig reads configuration honoring the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// openStore opens the journal honoring --db and db.path.
func openStore(cmd *cobra.Command, cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// newRuntime loads config, opens the journal and builds the quiz
// dependencies.
func newRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	rt.logger = logger
	rt.cleanup = append(rt.cleanup, closeLog)

	st, err := openStore(cmd, cfg)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.store = st
	rt.cleanup = append(rt.cleanup, func() { st.Close() })

	problems, err := problem.LoadEmbedded(problem.WithLogger(logger))
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("load problems: %w", err)
	}

	recorder := metrics.New()
	if cfg.Metrics.Addr != "" {
		rt.cleanup = append(rt.cleanup, serveMetrics(cfg.Metrics.Addr, recorder, logger))
	}

	rt.deps = quiz.Deps{
		Sessions:   session.NewManager(problems, session.WithObserver(recorder)),
		Tracker:    progression.NewTracker(progression.DefaultCatalog(), cfg.Progression.PassAccuracy),
		Wallet:     xp.NewWallet(cfg.XP.StartingBalance, cfg.XP.PerCorrect),
		Events:     st.EventRepo(),
		Hints:      recorder,
		Logger:     logger,
		HintConfig: cfg.HintConfigFor,
	}
	return rt, nil
}

// serveMetrics exposes the recorder on addr until the returned stop func
// is called.
func serveMetrics(addr string, recorder *metrics.Recorder, logger *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("metrics server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// runApp builds the runtime and launches the TUI. initial, when set,
// builds the first screen instead of home.
func runApp(cmd *cobra.Command, initial func(quiz.Deps, *config.Config) screen.Screen) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	opts := app.Options{Deps: rt.deps}
	if initial != nil {
		opts.Initial = initial(rt.deps, rt.cfg)
	}

	rt.logger.Info("starting", zap.String("version", version))
	if err := app.Run(opts); err != nil {
		rt.logger.Error("program exited with error", zap.Error(err))
		return err
	}
	return nil
}
