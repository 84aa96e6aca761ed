/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskbuddy/internal/ui"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show operation metrics",
	Long:  `Print count and average/min/max duration per operation kind. Metrics live in memory, so the report covers the current process only; it is mostly useful under 'taskbuddy serve'.`,
	Run: func(cmd *cobra.Command, args []string) {
		svc, st, err := BuildService()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = st.Close() }()

		fmt.Println(ui.RenderReport(svc.Report(), !stdoutIsTerminal()))
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
