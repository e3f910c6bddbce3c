package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwbudde/curvefit/internal/server"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the fit job HTTP server",
	Long: `Starts an HTTP server that accepts fit jobs over a JSON API, runs
them in the background and streams progress over server-sent events.

The listen address comes from --addr, or from CURVEFIT_ADDR when the
flag is not set. A .env file in the working directory is loaded first.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using system environment variables")
	}

	addr := serveAddr
	if env := os.Getenv("CURVEFIT_ADDR"); env != "" && !cmd.Flags().Changed("addr") {
		addr = env
	}

	srv := server.NewServer(addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case sig := <-stop:
		slog.Info("Received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
