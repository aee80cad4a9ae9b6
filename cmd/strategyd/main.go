package main

// #region imports
import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/codec"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/config"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/engine"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/learner"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/logging"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/metrics"
)

// #endregion

// version is set at build time.
var version = "dev"

// #region main
func main() {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:           "strategyd",
		Short:         "Adaptive metacognitive strategy-selection engine",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to strategy.yaml (default ./strategy.yaml)")

	rootCmd.AddCommand(
		serveCmd(&cfgPath),
		selectCmd(&cfgPath),
		trajectoryCmd(&cfgPath),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region wiring
// runtime holds everything built from the configuration.
type runtime struct {
	cfg     *config.Config
	log     zerolog.Logger
	engine  *engine.Engine
	db      *sql.DB
	metrics *metrics.Metrics
	reg     *prometheus.Registry
}

func (r *runtime) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// build loads configuration and wires the engine. withStorage opens the plan
// log when the configuration asks for it.
func build(cfgPath string, withStorage bool) (*runtime, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	rt := &runtime{
		cfg: cfg,
		log: logging.NewLogger(cfg.Logging, os.Stderr),
		reg: prometheus.NewRegistry(),
	}
	rt.reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rt.metrics = metrics.New(rt.reg)

	cat, ec, err := cfg.BuildEngine()
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{
		engine.WithLogger(rt.log),
		engine.WithObserver(rt.metrics),
	}
	if withStorage && cfg.Storage.RecordPlans {
		db, err := logging.OpenDB(cfg.Storage.DBPath)
		if err != nil {
			return nil, err
		}
		rt.db = db
		opts = append(opts, engine.WithRecorder(logging.NewPlanRecorder(db)))
	}

	rt.engine, err = engine.New(cat, ec, opts...)
	if err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

// #endregion wiring

// #region serve
func serveCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the strategy engine over gRPC",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := build(*cfgPath, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, rt)
		},
	}
}

func serve(ctx context.Context, rt *runtime) error {
	lis, err := net.Listen("tcp", rt.cfg.Server.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", rt.cfg.Server.GRPCAddr, err)
	}
	srv, hs := codec.NewGRPCServer(codec.NewServer(rt.engine), rt.log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rt.log.Info().
			Str("addr", rt.cfg.Server.GRPCAddr).
			Int("strategies", rt.engine.Catalog().Len()).
			Str("clip_policy", rt.cfg.Engine.ClipPolicy).
			Msg("grpc server listening")
		return srv.Serve(lis)
	})

	var metricsSrv *http.Server
	if rt.cfg.Server.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(rt.reg, promhttp.HandlerOpts{}))
		metricsSrv = &http.Server{Addr: rt.cfg.Server.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			rt.log.Info().Str("addr", rt.cfg.Server.MetricsAddr).Msg("metrics listening")
			if err := metricsSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		rt.log.Info().Msg("shutting down")
		hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		srv.GracefulStop()
		if metricsSrv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return metricsSrv.Shutdown(shutdownCtx)
		}
		return nil
	})

	return g.Wait()
}

// #endregion serve

// #region select
func selectCmd(cfgPath *string) *cobra.Command {
	var reqPath, addr string
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select a strategy plan for a request (JSON from --request or stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req engine.Request
			if err := readJSON(cmd.InOrStdin(), reqPath, &req); err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			if addr != "" {
				client, err := codec.NewClient(addr)
				if err != nil {
					return err
				}
				defer client.Close()
				p, err := client.SelectStrategy(ctx, req)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), p)
			}

			rt, err := build(*cfgPath, true)
			if err != nil {
				return err
			}
			defer rt.Close()
			p, err := rt.engine.SelectAdaptiveStrategy(ctx, req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), p)
		},
	}
	cmd.Flags().StringVar(&reqPath, "request", "", "path to request JSON (default stdin)")
	cmd.Flags().StringVar(&addr, "addr", "", "call a running strategyd at this address instead of selecting locally")
	return cmd
}

// #endregion select

// #region trajectory
func trajectoryCmd(cfgPath *string) *cobra.Command {
	var historyPath, learnerID string
	cmd := &cobra.Command{
		Use:   "trajectory",
		Short: "Analyze a learning history (JSON episode list from --history or stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var history []learner.Episode
			if err := readJSON(cmd.InOrStdin(), historyPath, &history); err != nil {
				return err
			}
			rt, err := build(*cfgPath, false)
			if err != nil {
				return err
			}
			defer rt.Close()
			return writeJSON(cmd.OutOrStdout(), codec.TrajectoryResponse{
				Trajectory: rt.engine.AnalyzeLearningTrajectory(learnerID, history),
				Skills:     rt.engine.IdentifySkillPatterns(history),
			})
		},
	}
	cmd.Flags().StringVar(&historyPath, "history", "", "path to episode list JSON (default stdin)")
	cmd.Flags().StringVar(&learnerID, "learner", "", "learner id")
	return cmd
}

// #endregion trajectory

// #region io
func readJSON(stdin io.Reader, path string, v any) error {
	r := stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// #endregion io
