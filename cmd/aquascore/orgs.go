package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aquascore/aquascore/internal/org"
)

func newOrgsCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "orgs",
		Short: "List registered organizations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrgs(cmd.Context(), databaseURL)
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", envOrDefault("DATABASE_URL", defaultDatabaseURL), "Postgres connection string")

	return cmd
}

func runOrgs(ctx context.Context, databaseURL string) error {
	db, err := openDB(databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	orgs, err := org.NewService(db).ListOrganizations(ctx)
	if err != nil {
		return err
	}

	if len(orgs) == 0 {
		fmt.Println("No organizations registered.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSUPPLY CODE\tCREATED")
	for _, o := range orgs {
		code := ""
		if o.SupplyCode != nil {
			code = *o.SupplyCode
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.ID, o.Name, code, o.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}
