package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/khata-pos/khata/internal/api"
	"github.com/khata-pos/khata/internal/logger"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP page shell",
	Long: `Run the HTTP server that drives the ledger views.
Navigation uses the same two query parameters as the pages:
GET /ledger?customer=NAME for a customer, ?transaction=ID for a single
transaction, neither for the overview.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	svcs, err := openServices()
	if err != nil {
		return err
	}
	defer svcs.close()

	server := api.NewServer(svcs.ledger, svcs.directory, logger.WithComponent("api"))
	if svcs.cfg.API.Metrics {
		server.EnableMetrics()
	}

	addr := fmt.Sprintf("%s:%d", svcs.cfg.API.Host, svcs.cfg.API.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	fmt.Fprintf(os.Stdout, "khata listening on http://%s\n", addr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
