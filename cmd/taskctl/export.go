package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"taskboard/internal/adapter/export"
	"taskboard/internal/app"
	"taskboard/internal/core/domain"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the task list to PDF or a spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, ok := export.ParseFormat(exportFormat)
		if !ok {
			return fmt.Errorf("unsupported format %q, use pdf or xlsx", exportFormat)
		}

		return withSignedIn(cmd, func(ctx context.Context, a *app.App, _ domain.Identity) error {
			now := time.Now()
			path := exportOutput
			if path == "" {
				path = a.Exporter.Filename(format, now)
			}

			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := a.Exporter.Export(f, format, a.Tasks.List(), now); err != nil {
				_ = f.Close()
				_ = os.Remove(path)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "pdf or xlsx")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default task-list-YYYY-MM-DD.<format>)")
}
