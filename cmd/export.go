/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	exportFormat string
	exportOutput string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the task list",
	Long:  `Write the task collection to stdout or a file, as JSON (the native format) or YAML.`,
	Example: `  taskbuddy export
  taskbuddy export --format yaml --output tasks.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		svc, st, err := BuildService()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = st.Close() }()

		list, err := svc.List()
		if err != nil {
			HandleFatalError("Error: Could not load tasks.", err)
		}

		var data []byte
		switch exportFormat {
		case "json":
			buf := new(bytes.Buffer)
			enc := json.NewEncoder(buf)
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			if err := enc.Encode(list); err != nil {
				HandleFatalError("Error: Could not marshal tasks.", err)
			}
			data = buf.Bytes()
		case "yaml":
			data, err = yaml.Marshal(list)
			if err != nil {
				HandleFatalError("Error: Could not marshal tasks.", err)
			}
		default:
			HandleFatalError(fmt.Sprintf("Error: Unsupported format %q. Supported formats are json and yaml.", exportFormat), nil)
		}

		if exportOutput == "" {
			fmt.Print(string(data))
			return
		}
		if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
			HandleFatalError("Error: Could not write the export file.", err)
		}
		fmt.Printf("Exported %d tasks to %s\n", len(list), exportOutput)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format (json or yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
