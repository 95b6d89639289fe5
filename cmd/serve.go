package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/grocer/internal/web"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web chat server",
	Long:  `Starts an HTTP server with a browser chat UI backed by the assistant over WebSocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort > 0 {
			cfg.Port = servePort
		}

		a, closeDB, err := openAssistant(context.Background(), cfg, false)
		if err != nil {
			return err
		}
		defer closeDB()

		srv := web.New(web.Config{Port: cfg.Port}, a)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "grocer v%s serving chat on http://localhost:%d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Products: %d\n", a.Catalog().Len())
		fmt.Fprintf(os.Stderr, "  Indexed:  %d\n", a.IndexCount())

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
