package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leads-cli/internal/importer"
	"github.com/sells-group/leads-cli/internal/sheet"
)

var (
	importFile    string
	importProject string
	importSheet   string
	importSkip    int
	importAliases string
	importDryRun  bool
	importVerbose bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import leads from an XLSX or CSV export into a project",
	Long: `Reads a spreadsheet export, maps each row onto the canonical lead fields
(resolving whatever header spellings the source CRM used), and bulk-creates
the accepted rows. Rows without a recognizable company name are skipped,
never fatal.

Examples:
  # Preview what would be imported, with per-row skip reasons
  leads-cli import --file leads.xlsx --project P-42 --dry-run --verbose

  # Import a CSV with custom header aliases
  leads-cli import --file export.csv --project P-42 --aliases aliases.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if importAliases == "" {
			importAliases = cfg.Import.AliasFile
		}
		if importAliases != "" {
			overrides, err := importer.LoadAliasOverrides(importAliases)
			if err != nil {
				return err
			}
			if err := overrides.Apply(); err != nil {
				return err
			}
		}

		rows, err := readRows()
		if err != nil {
			return err
		}
		zap.L().Info("sheet decoded", zap.String("file", importFile), zap.Int("rows", len(rows)))

		if importDryRun {
			p := importer.NewPipeline(nil, cfg.Import.Concurrency)
			result, err := p.MapRows(ctx, importProject, rows)
			if err != nil {
				return err
			}
			printResult(result)
			return nil
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		p := importer.NewPipeline(st, cfg.Import.Concurrency)
		result, created, err := p.Run(ctx, importProject, rows)
		if result != nil {
			printResult(result)
		}
		if err != nil {
			return err
		}

		zap.L().Info("import complete",
			zap.String("project_id", importProject),
			zap.Int("created", len(created)),
			zap.Int("rejected", result.RejectedCount()),
		)
		return nil
	},
}

func readRows() ([]importer.ImportRow, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(importFile), ".csv"):
		return sheet.ReadCSV(importFile, sheet.CSVOptions{Charset: cfg.Import.CSVCharset})
	case strings.HasSuffix(strings.ToLower(importFile), ".xlsx"):
		opts := sheet.Options{SheetIndex: cfg.Import.SheetIndex, SkipRows: importSkip}
		if importSheet != "" {
			opts.SheetName = importSheet
		} else if cfg.Import.SheetName != "" {
			opts.SheetName = cfg.Import.SheetName
		}
		return sheet.ReadXLSX(importFile, opts)
	default:
		return nil, eris.Errorf("import: unsupported file type %q (want .xlsx or .csv)", importFile)
	}
}

func printResult(result *importer.Result) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if importVerbose {
		_ = enc.Encode(result)
		return
	}
	_ = enc.Encode(map[string]int{
		"accepted": len(result.Accepted),
		"rejected": result.RejectedCount(),
	})
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "path to XLSX or CSV file (required)")
	importCmd.Flags().StringVar(&importProject, "project", "", "target project id (required)")
	importCmd.Flags().StringVar(&importSheet, "sheet", "", "sheet name (default: first sheet)")
	importCmd.Flags().IntVar(&importSkip, "skip-rows", 0, "extra rows to skip after the header")
	importCmd.Flags().StringVar(&importAliases, "aliases", "", "YAML file with extra header aliases")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "map rows without persisting")
	importCmd.Flags().BoolVar(&importVerbose, "verbose", false, "print accepted payloads and per-row skip reasons")
	_ = importCmd.MarkFlagRequired("file")
	_ = importCmd.MarkFlagRequired("project")
	rootCmd.AddCommand(importCmd)
}
