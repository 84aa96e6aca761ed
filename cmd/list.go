/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskbuddy/internal/ui"
)

var listPlain bool

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List all tasks",
	Long:    `Print the task list in display order. The number in front of each task is the position used by toggle and delete; numbers shift after a delete, so list again before the next change.`,
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

		fmt.Println(ui.RenderTaskList(list, listPlain || !stdoutIsTerminal()))
	},
}

func init() {
	listCmd.Flags().BoolVar(&listPlain, "plain", false, "disable styled output")
	rootCmd.AddCommand(listCmd)
}
