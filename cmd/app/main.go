package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"prepcenter/cmd"
	httpin "prepcenter/internal/adapters/in/http"
	"prepcenter/internal/adapters/out/postgres"
	"prepcenter/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	configs := getConfigs(logger)

	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("migrate schema: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("build application: %v", err)
	}

	metrics.Register(prometheus.DefaultRegisterer)

	jobManager, publisher := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("start jobs: %v", err)
	}
	defer func() {
		jobManager.StopAll()
		if publisher != nil {
			if err := publisher.Close(); err != nil {
				logger.Error("Close audit publisher", "error", err)
			}
		}
	}()

	startWebServer(app, configs.HTTPPort, logger)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Warn("No .env file, using the process environment", "error", err)
	}

	return cmd.Config{
		HTTPPort:        envOr("HTTP_PORT", "8080"),
		DBHost:          envOr("DB_HOST", "localhost"),
		DBPort:          envOr("DB_PORT", "5432"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBSslMode:       envOr("DB_SSLMODE", "disable"),
		LockTimeout:     durationEnv("DB_LOCK_TIMEOUT", 5*time.Second),
		KafkaBrokers:    listEnv("KAFKA_BROKERS"),
		KafkaAuditTopic: os.Getenv("KAFKA_AUDIT_TOPIC"),
		RelaySchedule:   envOr("AUDIT_RELAY_SCHEDULE", "*/5 * * * * *"),
		RelayBatch:      int(intEnv("AUDIT_RELAY_BATCH", 100)),
		RelaySettle:     durationEnv("AUDIT_RELAY_SETTLE", 10*time.Second),
		Currency:        envOr("PRICING_CURRENCY", "USD"),
		DefaultRate:     intEnv("PRICING_DEFAULT_RATE", 0),
		RateCard:        os.Getenv("PRICING_RATE_CARD"),
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return n
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return d
}

func listEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func startWebServer(app cmd.CompositionRoot, port string, logger *slog.Logger) {
	e, err := httpin.NewRouter(httpin.RouterConfig{
		Server:    app.CreateHTTPServer(),
		Directory: app.CreatePrincipalDirectory(),
		Gatherer:  prometheus.DefaultGatherer,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("build router: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()
	logger.Info("HTTP server started", "port", port)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
	logger.Info("HTTP server stopped")
}
