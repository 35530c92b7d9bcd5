package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"leadflow/internal/logging"
	"leadflow/internal/repositories"
	"leadflow/internal/services"
)

func newPackCommand() *cobra.Command {
	var row int

	cmd := &cobra.Command{
		Use:   "pack <file.csv>",
		Short: "Import a CSV into a fresh store and print the document pack for one row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, err := readDrafts(args[0])
			if err != nil {
				return err
			}
			if row < 1 || row > len(drafts) {
				return fmt.Errorf("row %d out of range (1-%d)", row, len(drafts))
			}

			repo := repositories.NewLeadRepository()
			activity := repositories.NewActivityLog(nil)
			docs := services.NewDocumentService(nil, nil)
			svc := services.NewLeadService(repo, activity, nil, services.TransitionPolicy{}, docs,
				services.WithLogger(logging.Discard()),
			)
			res, err := svc.AddBulkLeads(drafts)
			if err != nil {
				return err
			}

			lead := res.Leads[row-1]
			fmt.Fprint(cmd.OutOrStdout(), docs.RenderText(docs.Generate(*lead)))
			return nil
		},
	}
	cmd.Flags().IntVar(&row, "row", 1, "1-based data row to generate documents for")
	return cmd
}
