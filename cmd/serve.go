/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskbuddy/internal/server"
)

var servePort int

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the TaskBuddy HTTP API",
	Long: `Start an HTTP server exposing the task operations as a JSON API under
/api. The server keeps one metrics recorder for its lifetime, so GET
/api/report accumulates timings across requests. Press Ctrl+C to stop.`,
	Example: `  taskbuddy serve
  taskbuddy serve --port 9090`,
	Run: func(cmd *cobra.Command, args []string) {
		config := GetConfig()
		logger := newLogger()

		svc, st, err := BuildService()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = st.Close() }()

		port := config.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		taskFile := ""
		if config.Server.WatchTaskFile {
			taskFile = st.Path()
		}

		srv, err := server.New(svc, taskFile, port, logger)
		if err != nil {
			HandleFatalError("Error: Could not start the API server.", err)
		}

		var wg sync.WaitGroup
		errChan := make(chan error, 1)
		srv.Start(&wg, errChan)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigChan:
			logger.Info("shutting down", "signal", sig.String())
		case err := <-errChan:
			logger.Error("server failed", "error", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
		wg.Wait()

		fmt.Println("Server stopped.")
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port for the API server")
	rootCmd.AddCommand(serveCmd)
}
