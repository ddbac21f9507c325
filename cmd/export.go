package cmd

import (
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/avencia/chatframe/chat"
	"github.com/avencia/chatframe/export"
	"github.com/avencia/chatframe/internal/config"
)

var (
	exportFormat string
	exportOutDir string
)

var exportCmd = &cobra.Command{
	Use:   "export [transcript.json]",
	Short: "Re-render a saved transcript",
	Long: `Read a transcript previously exported as JSON and render it into another
format. JSON and text keep every entity; PDF applies the configured
visibility policy.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("Failed to read transcript: %v", err)
		}

		entities, err := export.DecodeJSON(data)
		if err != nil {
			log.Fatalf("Failed to decode transcript: %v", err)
		}
		transcript := chat.FromEntities(entities)

		opts := export.DefaultOptions()
		opts.OutputDir = exportOutDir
		opts.Policy = cfg.Policy()

		exporter, err := export.ForFormat(exportFormat, opts)
		if err != nil {
			log.Fatalf("Unknown format: %v", err)
		}

		path, err := export.ExportToFile(transcript, exporter, opts)
		if err != nil {
			color.Red("Export failed: %v", err)
			os.Exit(1)
		}

		color.Green("Exported %d entities to %s", transcript.Len(), path)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "text", "output format: json, text or pdf")
	exportCmd.Flags().StringVarP(&exportOutDir, "out", "o", ".", "output directory")
	rootCmd.AddCommand(exportCmd)
}
