// Command sweep releases expired reservations once and exits.
// Meant to be run by cron or a Kubernetes CronJob next to the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-VisitScheduler/internal/bootstrap"
	"github.com/m04kA/SMC-VisitScheduler/internal/config"
	contractRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/contract"
	interestedRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/interested"
	propertyRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/property"
	reservationRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/reservation"
	reservationsService "github.com/m04kA/SMC-VisitScheduler/internal/service/reservations"
	sweepExpiredUC "github.com/m04kA/SMC-VisitScheduler/internal/usecase/sweep_expired_reservations"
	"github.com/m04kA/SMC-VisitScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-VisitScheduler/pkg/logger"
	"github.com/m04kA/SMC-VisitScheduler/pkg/metrics"
	"github.com/m04kA/SMC-VisitScheduler/pkg/txmanager"
)

type options struct {
	configPath string
	now        string
	batchSize  int
	format     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "sweep",
		Short:         "Release expired reservations",
		Long:          "Deactivates every active reservation whose expiry has passed, returns freed properties to available and notifies owners and clients.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "config.toml", "path to the TOML config")
	cmd.Flags().StringVar(&opts.now, "now", "", "reference time in RFC 3339 (default: current time)")
	cmd.Flags().IntVar(&opts.batchSize, "batch", 0, "reservations per batch (default: sweep.batch_size)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format (text|json)")

	return cmd
}

func parseNow(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	now, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: %w", raw, err)
	}
	return now, nil
}

func run(ctx context.Context, opts *options) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown --format %q", opts.format)
	}

	now, err := parseNow(opts.now)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	batchSize := cfg.Sweep.BatchSize
	if opts.batchSize > 0 {
		batchSize = opts.batchSize
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	calendar, err := cfg.Calendar.ToDomain()
	if err != nil {
		return err
	}

	db, err := bootstrap.OpenDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	// метрики в разовом запуске не собираются; nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	wrappedDB := dbmetrics.Wrap(db, metricsCollector)
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxAttempts(cfg.Database.TxMaxAttempts))

	notify, closeNotifier, err := bootstrap.NewNotifier(cfg.Notifications, cfg.Metrics.ServiceName+"-sweep", wrappedDB, log)
	if err != nil {
		return err
	}
	defer closeNotifier()

	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	propertyRepository := propertyRepo.NewRepository(wrappedDB)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		contractRepo.NewRepository(wrappedDB),
		propertyRepository,
		interestedRepo.NewRepository(wrappedDB),
		notify,
		calendar.Location,
		log,
	)

	useCase := sweepExpiredUC.NewUseCase(
		reservationRepository,
		reservationSvc,
		reservationSvc,
		metricsCollector,
		txMgr,
		batchSize,
		log,
	)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := useCase.Execute(ctx, &sweepExpiredUC.Request{Now: now})
	if err != nil {
		return err
	}

	return printResult(opts.format, result)
}

func printResult(format string, result *sweepExpiredUC.Response) error {
	if format == "json" {
		return json.NewEncoder(os.Stdout).Encode(result)
	}
	fmt.Printf("released: %d\nfailed:   %d\n", result.Released, result.Failed)
	return nil
}
