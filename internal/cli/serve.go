// File path: internal/cli/serve.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nicodishanthj/lqa-insight/internal/api"
	"github.com/nicodishanthj/lqa-insight/internal/common"
	"github.com/nicodishanthj/lqa-insight/internal/session"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	Long: `Start the HTTP server hosting the upload page and the audit dashboard.

Endpoints:
  GET  /             upload, progress or dashboard page
  GET  /report       dashboard tab (?tab=overview|fixes|context|improvements)
  POST /files        add HTML reports (multipart field "files")
  POST /audit        start the audit
  GET  /export.xlsx  download the workbook
  GET  /v1/status    session state as JSON
  GET  /healthz      health check`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "", "listen address (default from config, :8080)")
	addLLMFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := common.Logger()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); strings.TrimSpace(addr) != "" {
		cfg.Addr = strings.TrimSpace(addr)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := newAuditClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("llm provider: %w", err)
	}
	srv, err := api.NewServer(ctx, session.New(), client, &api.Config{
		DefaultLocale: cfg.Locale(),
		UploadMemory:  cfg.UploadMemory,
	})
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	reachable := cfg.Addr
	if strings.HasPrefix(reachable, ":") {
		reachable = "localhost" + reachable
	}
	logger.Info("insight: server listening", "addr", cfg.Addr, "health", "/healthz")
	fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", reachable)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	logger.Info("insight: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("insight: shutdown incomplete", "error", err)
	}
	srv.Wait()
	return nil
}
