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

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete <number>",
	Aliases: []string{"rm", "del"},
	Short:   "Delete a task",
	Long:    `Remove the task at the given list position (as shown by 'taskbuddy list'). Positions of later tasks shift down by one.`,
	Example: `  taskbuddy delete 3`,
	Args:    cobra.ExactArgs(1),
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

		removed, err := svc.Delete(index)
		if err != nil {
			if errors.Is(err, models.ErrIndexOutOfRange) {
				HandleFatalError(fmt.Sprintf("Error: No task at position %s. Run 'taskbuddy list' to see current numbers.", args[0]), nil)
			}
			HandleFatalError("Error: Could not delete the task.", err)
		}

		fmt.Printf("Deleted task: %s\n", removed.Title)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
