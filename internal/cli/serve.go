package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lingtools/elanstats/internal/web"
)

var listenAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the corpus statistics dashboard",
	Long: `Serve renders the aggregated per-corpus figures over HTTP: transcribed
and recorded durations, token counts, informant shares and the common
frequency list, with a Russian/English locale switch.

Corpora are configured under web.corpora in the config file:

  web:
    listen: ":8080"
    corpora:
      - name: Selkup
        stats_dir: /corpora/selkup/stats`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.Web.Listen = listenAddr
	}
	if len(cfg.Web.Corpora) == 0 {
		return fmt.Errorf("no corpora configured (web.corpora)")
	}

	server, err := web.NewServer(cfg.Web)
	if err != nil {
		return err
	}

	log := newLogger()
	log.Infof("dashboard listening on %s", cfg.Web.Listen)
	return server.Run()
}
