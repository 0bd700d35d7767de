package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/balkashynov/gauge/internal/models"
)

// exportDoc is the shape written by export
type exportDoc struct {
	ExportedAt   time.Time      `json:"exportedAt" yaml:"exported_at" toml:"exported_at"`
	ActiveTaskID string         `json:"activeTaskId,omitempty" yaml:"active_task_id,omitempty" toml:"active_task_id,omitempty"`
	Tasks        []models.Task  `json:"tasks" yaml:"tasks" toml:"tasks"`
	History      models.History `json:"history" yaml:"history" toml:"history"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks and focus history",
	Long: `Write all tasks and the daily focus ledger as JSON, YAML or TOML.

Examples:
  gauge export > backup.json
  gauge export --format yaml -o backup.yaml`,
	Args: cobra.NoArgs,
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		snap := app.Ctrl.Snapshot()
		doc := exportDoc{
			ExportedAt:   app.Ctrl.Now(),
			ActiveTaskID: snap.ActiveTaskID,
			Tasks:        snap.Tasks,
			History:      snap.History,
		}

		var w io.Writer = os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}

		if err := writeExport(w, doc, format); err != nil {
			return err
		}
		if output != "" {
			fmt.Printf("Exported %d tasks to %s\n", len(doc.Tasks), output)
		}
		return nil
	}),
}

// writeExport encodes doc to w in the given format
func writeExport(w io.Writer, doc exportDoc, format string) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("unknown format '%s' (use json, yaml or toml)", format)
	}
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "Output format: json, yaml or toml")
	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}
