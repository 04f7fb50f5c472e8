package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aquascore/aquascore/internal/org"
)

func newHistoryCmd() *cobra.Command {
	var (
		orgName     string
		databaseURL string
		outputFmt   string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past compliance scores for an organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), orgName, databaseURL, outputFmt)
		},
	}

	cmd.Flags().StringVar(&orgName, "org", "", "Organization name (required)")
	cmd.Flags().StringVar(&databaseURL, "database-url", envOrDefault("DATABASE_URL", defaultDatabaseURL), "Postgres connection string")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func runHistory(ctx context.Context, orgName, databaseURL, outputFmt string) error {
	db, err := openDB(databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	orgs := org.NewService(db)
	o, err := orgs.GetOrganizationByName(ctx, orgName)
	if err != nil {
		return err
	}

	scores, err := orgs.ListScores(ctx, o.ID)
	if err != nil {
		return err
	}

	if outputFmt == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(scores)
	}

	if len(scores) == 0 {
		fmt.Printf("No scores recorded for %s.\n", o.Name)
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COMPUTED\tOVERALL\tTREND\tDWSP\tASSETS\tDOCS\tREPORTING\tRISK\tTIMELINESS")
	for _, s := range scores {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.0f\t%.0f\t%.0f\t%.0f\t%.0f\t%.0f\n",
			s.ComputedAt.Format("2006-01-02 15:04"),
			s.Overall, s.Trend,
			s.DWSP, s.Assets, s.Documentation, s.Reporting, s.Risk, s.Timeliness,
		)
	}
	return tw.Flush()
}
