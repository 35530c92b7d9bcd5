package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"leadflow/internal/models"
	"leadflow/internal/services"
)

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Parse a lead CSV and show what would be imported",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, err := readDrafts(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderDrafts(drafts, shouldColorize(out)))
			fmt.Fprintf(out, "%d leads parsed\n", len(drafts))
			return nil
		},
	}
}

func readDrafts(path string) ([]models.LeadDraft, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	drafts, err := services.ParseLeadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return drafts, nil
}

func renderDrafts(drafts []models.LeadDraft, colorize bool) string {
	headers := []string{"#", "Employer", "Fund", "Current Class", "Proposed Class", "Est. Saving (R)"}
	rows := make([][]string, 0, len(drafts))
	for i, d := range drafts {
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			d.CompanyName,
			d.Industry,
			d.CurrentClass,
			d.TargetClass,
			humanize.CommafWithDigits(d.PotentialSaving, 2),
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight}, colorize)
}
