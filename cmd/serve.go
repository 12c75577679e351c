package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"payprep/config"
	"payprep/web"

	"github.com/spf13/cobra"
)

var (
	servePort   int
	serveNoOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local upload/download web surface",
	Long: `Start a local HTTP server that accepts the three input files as a multipart
upload and returns warnings, previews, or either output view.

Endpoints:
- GET  /api/cycle                          current pay cycle
- POST /api/validate                       warnings as JSON
- POST /api/preview?rows=N                 warnings plus the first N rows of both views
- POST /api/combine?view=complete|upload   one view as a CSV or Excel download

Upload fields: roster, timers, export. Each request is processed on its own; nothing
is stored between requests.`,
	Example: `
  # Start on the configured port (default 8080)
  payprep serve

  # Start on a custom port without opening a browser
  payprep serve --port 9090 --no-open

  # Validate with curl
  curl -F roster=@roster.csv -F timers=@timers.csv -F export=@export.csv http://localhost:8080/api/validate
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		port := resolveServePort(cmd.Flags().Changed("port"), servePort, *cfg)
		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           web.NewServer(*cfg, web.WithLogger(slog.Default())),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		listenURL := fmt.Sprintf("http://localhost:%d", port)
		fmt.Printf("Listening on %s\n", listenURL)
		if !serveNoOpen {
			if openErr := openURLInBrowser(listenURL + "/api/cycle"); openErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to open browser: %v\n", openErr)
			}
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port (default from serve.port)")
	serveCmd.Flags().BoolVar(&serveNoOpen, "no-open", false, "Do not open browser automatically")
}

// resolveServePort prefers an explicit --port over the configured serve.port.
func resolveServePort(flagChanged bool, flagValue int, cfg config.Config) int {
	if flagChanged || cfg.Serve.Port <= 0 {
		return flagValue
	}
	return cfg.Serve.Port
}

func openURLInBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Start()
}
