package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/aquascore/aquascore/internal/archive"
	"github.com/aquascore/aquascore/internal/collect"
	"github.com/aquascore/aquascore/internal/compute"
	"github.com/aquascore/aquascore/internal/org"
	"github.com/aquascore/aquascore/internal/platform"
	"github.com/aquascore/aquascore/pkg/config"
	"github.com/aquascore/aquascore/pkg/report"
	"github.com/aquascore/aquascore/pkg/scoring"
)

const defaultDatabaseURL = "postgres://localhost:5432/aquascore?sslmode=disable"

func newScoreCmd() *cobra.Command {
	var (
		orgName     string
		databaseURL string
		configPath  string
		outputFmt   string
		archiveDir  string
		noPersist   bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute a compliance score for one organization",
		Long:  `Collects the organization's regulatory records, scores all six categories, and renders the report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.Context(), scoreOpts{
				orgName:     orgName,
				databaseURL: databaseURL,
				configPath:  configPath,
				outputFmt:   outputFmt,
				archiveDir:  archiveDir,
				noPersist:   noPersist,
			})
		},
	}

	cmd.Flags().StringVar(&orgName, "org", "", "Organization name (required)")
	cmd.Flags().StringVar(&databaseURL, "database-url", envOrDefault("DATABASE_URL", defaultDatabaseURL), "Postgres connection string")
	cmd.Flags().StringVar(&configPath, "config", "aquascore.yaml", "Path to config file")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	cmd.Flags().StringVar(&archiveDir, "archive-dir", "", "Local archive directory (default: from config)")
	cmd.Flags().BoolVar(&noPersist, "no-persist", false, "Compute and render only, skip history and archive writes")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

type scoreOpts struct {
	orgName     string
	databaseURL string
	configPath  string
	outputFmt   string
	archiveDir  string
	noPersist   bool
}

func runScore(ctx context.Context, opts scoreOpts) error {
	renderer, err := rendererFor(opts.outputFmt)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	db, err := openDB(opts.databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := platform.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	orgs := org.NewService(db)
	o, err := orgs.EnsureOrganization(ctx, opts.orgName)
	if err != nil {
		return err
	}

	engine := scoring.NewEngine(scoring.ScorersFromWeights(cfg.ScorerWeights())...)

	if opts.noPersist {
		snap, err := collect.New(db).Snapshot(ctx, o.ID)
		if err != nil {
			return err
		}
		history, err := orgs.RecentOverallScores(ctx, o.ID, cfg.Server.ScoreHistory)
		if err != nil {
			return err
		}
		score, err := engine.Score(snap, history)
		if err != nil {
			return err
		}
		return renderer.Render(os.Stdout, score)
	}

	archiveDir := opts.archiveDir
	if archiveDir == "" {
		archiveDir = cfg.Server.ArchiveDir
	}

	svc := compute.NewService(
		collect.New(db),
		engine,
		orgs,
		archive.NewLocalArchive(archiveDir),
		nil, // no event bus from the CLI
		nil,
		cfg.Server.ScoreHistory,
	)

	res, err := svc.ScoreOrganization(ctx, o.ID)
	if err != nil {
		return err
	}
	return renderer.Render(os.Stdout, res.Score)
}

func rendererFor(format string) (report.Renderer, error) {
	switch format {
	case "text":
		return &report.TerminalRenderer{}, nil
	case "json":
		return &report.JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text or json)", format)
	}
}

func openDB(url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
