package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leads-cli/internal/exporter"
	"github.com/sells-group/leads-cli/internal/segment"
)

var (
	exportFlags filterFlags
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export filtered leads to an XLSX file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		leads, err := st.ListLeads(ctx, exportFlags.project)
		if err != nil {
			return err
		}

		filtered := segment.Apply(leads, exportFlags.filter)
		if err := exporter.WriteXLSX(filtered, exportOut); err != nil {
			return err
		}

		zap.L().Info("export complete",
			zap.String("file", exportOut),
			zap.Int("leads", len(filtered)),
		)
		return nil
	},
}

func init() {
	exportFlags.register(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "leads-export.xlsx", "output file path")
	rootCmd.AddCommand(exportCmd)
}
