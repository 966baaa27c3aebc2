package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/witanlabs/sheetcalc/config"
	"github.com/witanlabs/sheetcalc/server"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a websocket evaluation server",
	Long: `Run an evaluation server.

Clients connect to ws://<addr>/v0/eval and send one text message per grid;
the server replies with a JSON envelope holding the evaluated CSV. Every
message is an independent batch run.

Examples:
  sheetcalc serve
  sheetcalc serve --listen :9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (env: SHEETCALC_LISTEN_ADDR; default :8793)")
	rootCmd.AddCommand(serveCmd)
}

// resolveListenAddr picks the listen address: flag, environment, config,
// then the default port.
func resolveListenAddr() (string, error) {
	if listenAddr != "" {
		return listenAddr, nil
	}
	if v := os.Getenv("SHEETCALC_LISTEN_ADDR"); v != "" {
		return v, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("loading config: %w", err)
	}
	if cfg.ListenAddr != "" {
		return cfg.ListenAddr, nil
	}
	return ":8793", nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	addr, err := resolveListenAddr()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Printf("listening on %s\n", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
