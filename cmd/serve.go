package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hashportal/hashportal/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portal server",
	Long: `Starts the HTTP server: the shell page on /, content documents on
/data/*, and one portal session per websocket connection on /ws.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		srv, err := server.New(server.Config{
			Port:     cfg.Port,
			SiteDir:  cfg.Content.Dir,
			AllowAll: cfg.AllowAllOrigins,
			Portal:   portalOptions(cfg),
		})
		if err != nil {
			return err
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "hashportal v%s starting on port %d\n", Version, cfg.Port)
		if cfg.Content.BaseURL != "" {
			fmt.Fprintf(os.Stderr, "  Documents: %s\n", cfg.Content.BaseURL)
		} else {
			fmt.Fprintf(os.Stderr, "  Documents: %s\n", cfg.Content.Dir)
		}
		fmt.Fprintf(os.Stderr, "  Home: #%s\n", cfg.Home)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
