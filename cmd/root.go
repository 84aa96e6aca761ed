/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/taskbuddy/internal/hooks"
	"github.com/josephgoksu/taskbuddy/internal/metrics"
	"github.com/josephgoksu/taskbuddy/internal/task"
	"github.com/josephgoksu/taskbuddy/models"
	"github.com/josephgoksu/taskbuddy/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskbuddy",
	Short: "TaskBuddy keeps a simple task list in a JSON file.",
	Long: `TaskBuddy is a single-user task list. Tasks live in a plain JSON file;
every mutation snapshots the previous state into a backup directory and is
logged to an operation log. Tasks are addressed by their list position, so
re-check the numbers with 'taskbuddy list' after adding or deleting.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.taskbuddy.yaml or ./.taskbuddy.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// newLogger builds the application logger. Verbose mode lowers the level to
// debug.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if GetConfig().Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// GetStore initializes and returns the task store per the active config.
func GetStore() (store.TaskStore, error) {
	config := GetConfig()

	s := store.NewFileTaskStore()
	s.SetLogger(newLogger())
	err := s.Initialize(map[string]string{
		"dataFile":  config.Data.File,
		"backupDir": config.Data.BackupDir,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// BuildService wires the full operation layer: store, validator, hook
// pipeline and metrics recorder. The caller owns the returned store and
// must Close it.
func BuildService() (*task.Service, store.TaskStore, error) {
	config := GetConfig()
	logger := newLogger()

	st, err := GetStore()
	if err != nil {
		return nil, nil, err
	}

	validator := models.NewValidator()
	recorder := metrics.NewRecorder(config.Metrics.HistorySize)

	before := []hooks.BeforeHook{hooks.NewValidationHook(validator)}

	var after []hooks.AfterHook
	if config.Hooks.LogFile != "" {
		after = append(after, hooks.NewOpLogHook(config.Hooks.LogFile))
	} else {
		// Stage stays present but inert when the operation log is disabled.
		after = append(after, hooks.NopHook{})
	}
	after = append(after, hooks.NewMetricsHook(recorder))
	if config.Hooks.SelfCheck {
		after = append(after, hooks.NewSelfCheckHook(st))
	}

	pipeline := hooks.NewPipeline(logger, before, after)
	return task.NewService(st, pipeline, recorder, validator, logger), st, nil
}
