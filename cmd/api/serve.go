package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DioGolang/GoUniversity/configs"
	"github.com/DioGolang/GoUniversity/internal/application/usecase/academic"
	"github.com/DioGolang/GoUniversity/internal/infra/database"
	"github.com/DioGolang/GoUniversity/internal/infra/web"
	"github.com/DioGolang/GoUniversity/internal/infra/web/handler"
	"github.com/DioGolang/GoUniversity/pkg/logger"
	"github.com/DioGolang/GoUniversity/pkg/metrics"
	"github.com/DioGolang/GoUniversity/pkg/otel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func newServeCommand(v *viper.Viper, configPath *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configs.Load(v, *configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, migrate)
		},
	}
	cmd.Flags().String("port", "", "HTTP port (overrides WEB_SERVER_PORT)")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	_ = v.BindPFlag("WEB_SERVER_PORT", cmd.Flags().Lookup("port"))
	return cmd
}

func serve(ctx context.Context, cfg *configs.Conf, migrate bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log, err := logger.New(logger.Options{
		Service:    serviceName,
		Production: cfg.IsProduction(),
		Level:      cfg.LogLevel,
	})
	if err != nil {
		return err
	}

	if cfg.OTelCollectorAddr != "" {
		shutdown, err := otel.InitProvider(ctx, otel.ProviderConfig{
			ServiceName:    serviceName,
			ServiceVersion: version,
			Environment:    cfg.Environment,
			CollectorAddr:  cfg.OTelCollectorAddr,
		})
		if err != nil {
			return err
		}
		defer shutdown()
	}

	db, err := database.Open(ctx, cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if migrate {
		ver, err := database.Migrate(ctx, db, database.MigrateUp)
		if err != nil {
			return err
		}
		log.Info(ctx, "migrations applied", logger.Int64("version", ver))
	}

	reg := prometheus.NewRegistry()
	m := metrics.NewPrometheusMetrics(reg, serviceName)

	uow := database.NewUnitOfWorkFactory(db, log)
	uc := academic.NewMetricsDecorator(academic.NewService(uow, log), m)

	health, err := handler.NewHealthHandler(serviceName, version, handler.WithDatabase(db))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: ":" + cfg.WebServerPort,
		Handler: web.NewRouter(web.RouterConfig{
			ServiceName:    serviceName,
			UseCase:        uc,
			Logger:         log,
			Metrics:        m,
			Health:         health,
			MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info(gCtx, "server running",
			logger.String("port", cfg.WebServerPort),
			logger.String("driver", cfg.DBDriver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info(shutCtx, "shutting down server")
		return srv.Shutdown(shutCtx)
	})

	return g.Wait()
}
