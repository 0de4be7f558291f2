package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lingtools/elanstats/internal/media"
	"github.com/lingtools/elanstats/internal/model"
	"github.com/lingtools/elanstats/internal/pipeline"
	"github.com/lingtools/elanstats/internal/vcs"
	"github.com/lingtools/elanstats/internal/worker"
)

var (
	dirMode  bool
	workers  int
	statsDir string
	soundDir string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <repository>",
	Short: "Process a corpus and write per-speaker statistics",
	Long: `Run processes every annotation file in the latest revision of a corpus
repository: reconstructs each document's segment tree, extracts per-speaker
sentences, aggregates token frequencies and transcribed durations, measures
total sound duration, and writes the JSON artifacts the dashboard reads.

Example:
  elanstats run /corpora/selkup
  elanstats run --dir /corpora/selkup/eaf --stats-dir ./stats
  elanstats run /corpora/selkup --workers 4`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&dirMode, "dir", false, "treat the argument as a plain directory instead of a git repository")
	runCmd.Flags().IntVar(&workers, "workers", 0, "process documents in parallel with this many workers (0 = sequential)")
	runCmd.Flags().StringVar(&statsDir, "stats-dir", "", "output directory for statistics (overrides config)")
	runCmd.Flags().StringVar(&soundDir, "sound-dir", "", "directory with corpus sound files (overrides config)")
}

func runRun(cmd *cobra.Command, args []string) error {
	source := args[0]
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if statsDir != "" {
		cfg.Paths.Stats = statsDir
	}
	if soundDir != "" {
		cfg.Paths.Sound = soundDir
	}
	if workers > 0 {
		cfg.Batch.Workers = workers
	}

	renderer, err := pipeline.NewRenderer(cfg.Paths.Stats)
	if err != nil {
		return err
	}

	// Batch log goes to stderr and to a rotating log file in the stats
	// directory, next to the artifacts it describes.
	log := newLogger()
	fileLog := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Paths.Stats, "log.txt"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}
	defer fileLog.Close()
	log.SetOutput(io.MultiWriter(os.Stderr, fileLog))

	var files []model.SourceFile
	if dirMode {
		files, err = vcs.DirFiles(source, cfg.Corpus.SourceExt)
	} else {
		files, err = vcs.HeadFiles(source, cfg.Corpus.SourceExt)
	}
	if err != nil {
		return err
	}
	log.Infof("%d annotation files found", len(files))

	batch, err := pipeline.NewBatch(cfg.Corpus, log)
	if err != nil {
		return err
	}

	if cfg.Batch.Workers > 1 {
		results := worker.ProcessCorpus(ctx, batch.Processor(), files, cfg.Batch.Workers)
		for _, r := range results {
			batch.Record(r.Path, r.Totals, r.Error)
			if r.Error == nil {
				batch.Absorb(r.Stats)
			}
		}
	} else {
		for _, file := range files {
			if err := batch.Add(ctx, file); err != nil {
				log.Warn("interrupted, stopping after current document")
				break
			}
		}
	}

	log.Infof("Total transcribed duration: %s.", model.FormatDuration(batch.TranscribedDuration))
	log.Infof("Total tokens: %d.", batch.Tokens)
	if batch.Failures > 0 {
		log.Warnf("%d documents failed to parse", batch.Failures)
	}

	soundDuration := 0.0
	if _, statErr := os.Stat(cfg.Paths.Sound); statErr == nil {
		log.Info("Calculating sound duration...")
		soundDuration, err = media.DirDuration(cfg.Paths.Sound, log)
		if err != nil {
			// The aggregation is already done; a failed sound scan must
			// not cost the batch its artifacts.
			log.WithError(err).Warn("sound duration scan failed, recording zero")
			soundDuration = 0
		} else {
			log.Infof("Total sound duration: %s.", model.FormatDuration(soundDuration))
		}
	}

	if err := renderer.WriteStats(batch.Stats(), soundDuration); err != nil {
		return err
	}

	fmt.Printf("Total tokens: %d.\n", batch.Tokens)
	return nil
}
