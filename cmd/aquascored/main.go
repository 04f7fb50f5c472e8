// Command aquascored is the hosted AquaScore service.
// It serves the scoring REST API, the records webhook endpoint, Prometheus
// metrics, and a health check.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/handlers"
	_ "github.com/lib/pq"

	"github.com/aquascore/aquascore/internal/api"
	"github.com/aquascore/aquascore/internal/archive"
	"github.com/aquascore/aquascore/internal/collect"
	"github.com/aquascore/aquascore/internal/compute"
	"github.com/aquascore/aquascore/internal/events"
	"github.com/aquascore/aquascore/internal/observability"
	"github.com/aquascore/aquascore/internal/org"
	"github.com/aquascore/aquascore/internal/platform"
	"github.com/aquascore/aquascore/internal/webhook"
	"github.com/aquascore/aquascore/pkg/config"
	"github.com/aquascore/aquascore/pkg/scoring"
)

type daemonConfig struct {
	Port          string
	DatabaseURL   string
	ConfigPath    string
	APIKey        string
	WebhookSecret string
	KafkaBrokers  string
	GCSBucket     string
	S3Bucket      string
	ArchiveDir    string
}

func loadDaemonConfig() daemonConfig {
	return daemonConfig{
		Port:          envOrDefault("PORT", ""),
		DatabaseURL:   envOrDefault("DATABASE_URL", "postgres://localhost:5432/aquascore?sslmode=disable"),
		ConfigPath:    envOrDefault("AQUASCORE_CONFIG", "aquascore.yaml"),
		APIKey:        os.Getenv("API_KEY"),
		WebhookSecret: os.Getenv("RECORDS_WEBHOOK_SECRET"),
		KafkaBrokers:  os.Getenv("KAFKA_BROKERS"),
		GCSBucket:     os.Getenv("GCS_BUCKET"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		ArchiveDir:    os.Getenv("ARCHIVE_DIR"),
	}
}

func main() {
	dcfg := loadDaemonConfig()

	cfg, err := config.Load(dcfg.ConfigPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	port := dcfg.Port
	if port == "" {
		port = cfg.Server.Port
	}

	db, err := sql.Open("postgres", dcfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	arch, err := buildArchive(ctx, dcfg, cfg)
	if err != nil {
		log.Fatalf("configure archive: %v", err)
	}

	var publisher *events.Publisher
	if dcfg.KafkaBrokers != "" {
		publisher = events.NewPublisher(strings.Split(dcfg.KafkaBrokers, ","), cfg.Server.KafkaTopic)
		defer publisher.Close()
	}

	metrics := observability.NewMetrics()
	orgs := org.NewService(db)
	engine := scoring.NewEngine(scoring.ScorersFromWeights(cfg.ScorerWeights())...)

	svc := compute.NewService(
		collect.New(db),
		engine,
		orgs,
		arch,
		publisher,
		metrics,
		cfg.Server.ScoreHistory,
	)

	rescorer := webhook.RescoreFunc(func(ctx context.Context, orgID string) {
		if _, err := svc.ScoreOrganization(ctx, orgID); err != nil {
			log.Printf("webhook rescore %s: %v", orgID, err)
		}
	})
	webhookHandler := webhook.NewHandler([]byte(dcfg.WebhookSecret), orgs, rescorer)

	apiHandler := api.NewHandler(orgs, svc, arch, metrics)

	router := apiHandler.Router()
	router.Handle("/v1/webhooks/records", webhookHandler).Methods(http.MethodPost)
	router.HandleFunc("/readyz", readyHandler(db)).Methods(http.MethodGet)

	handler := handlers.LoggingHandler(os.Stdout,
		api.CORS(api.APIKeyAuth(dcfg.APIKey)(router)))

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	go func() {
		log.Printf("starting aquascored on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// buildArchive picks the archive backend: GCS, then S3, then local disk.
func buildArchive(ctx context.Context, dcfg daemonConfig, cfg *config.Config) (archive.Client, error) {
	if dcfg.GCSBucket != "" {
		return archive.NewGCSArchive(ctx, dcfg.GCSBucket)
	}
	if dcfg.S3Bucket != "" {
		return archive.NewS3Archive(ctx, archive.S3Config{
			Bucket:    dcfg.S3Bucket,
			Region:    os.Getenv("S3_REGION"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		})
	}
	dir := dcfg.ArchiveDir
	if dir == "" {
		dir = cfg.Server.ArchiveDir
	}
	return archive.NewLocalArchive(dir), nil
}

func readyHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
