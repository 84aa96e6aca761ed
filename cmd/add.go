/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskbuddy/models"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:     "add <title>",
	Aliases: []string{"a", "new"},
	Short:   "Add a new task",
	Long:    `Add a task to the list. The title is trimmed, capped at 200 characters, and angle brackets, ampersands and quotes are stripped.`,
	Example: `  taskbuddy add "Buy milk"
  taskbuddy add Walk the dog`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, st, err := BuildService()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = st.Close() }()

		created, err := svc.Add(strings.Join(args, " "))
		if err != nil {
			if errors.Is(err, models.ErrInvalidTitle) {
				HandleFatalError("Error: The task title cannot be empty.", nil)
			}
			HandleFatalError("Error: Could not add the task.", err)
		}

		fmt.Printf("Added task: %s\n", created.Title)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
