/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskbuddy/models"
)

// toggleCmd represents the toggle command
var toggleCmd = &cobra.Command{
	Use:     "toggle <number>",
	Aliases: []string{"done", "t"},
	Short:   "Toggle a task's completion state",
	Long:    `Flip the done flag of the task at the given list position (as shown by 'taskbuddy list'). Toggling a completed task reopens it.`,
	Example: `  taskbuddy toggle 2
  taskbuddy done 1`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		index, err := parseTaskNumber(args[0])
		if err != nil {
			HandleFatalError("Error: Invalid task number.", err)
		}

		svc, st, err := BuildService()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = st.Close() }()

		updated, err := svc.Toggle(index)
		if err != nil {
			if errors.Is(err, models.ErrIndexOutOfRange) {
				HandleFatalError(fmt.Sprintf("Error: No task at position %s. Run 'taskbuddy list' to see current numbers.", args[0]), nil)
			}
			HandleFatalError("Error: Could not toggle the task.", err)
		}

		if updated.Done {
			fmt.Printf("Completed: %s\n", updated.Title)
		} else {
			fmt.Printf("Reopened: %s\n", updated.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
