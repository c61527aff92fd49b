package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/solidity-tools/solcsync/config"
	"github.com/solidity-tools/solcsync/resolver"
	"github.com/solidity-tools/solcsync/store"
	"github.com/solidity-tools/solcsync/syncer"
)

// syncFlags holds the flags of the sync command.
type syncFlags struct {
	bucket   string
	baseURL  string
	localDir string
	workers  int
	limit    int
	dryRun   bool
}

func newSyncCmd(root *rootFlags) *cobra.Command {
	flags := &syncFlags{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync compiler binaries into the bucket",
		Long: `Sync resolves the list of available compiler versions, skips the ones
already published, and uploads the rest together with their SHA-256 digests.

Without --local-dir, versions come from the remote build manifest. With
--local-dir, the directory is scanned for solc binaries and each one is asked
for its version.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), root, flags)
		},
	}

	cmd.Flags().StringVar(&flags.bucket, "bucket", "", "destination S3 bucket (default from config/env)")
	cmd.Flags().StringVar(&flags.baseURL, "base-url", "", "remote build repository base URL")
	cmd.Flags().StringVar(&flags.localDir, "local-dir", "", "sync compilers from this local directory instead of the remote manifest")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "number of concurrent workers")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "limit the number of versions to process")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "resolve and probe but do not upload anything")

	return cmd
}

func runSync(parent context.Context, root *rootFlags, flags *syncFlags) error {
	cfg, err := config.Load(root.configPath)
	if err != nil {
		return err
	}
	if flags.bucket != "" {
		cfg.Bucket = flags.bucket
	}
	if flags.baseURL != "" {
		cfg.BaseURL = flags.baseURL
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	// SIGINT stops dispatch of new tasks and aborts in-flight transfers.
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	storeOpts := []store.Option{store.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		storeOpts = append(storeOpts, store.WithStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey))
	}
	st, err := store.New(ctx, storeOpts...)
	if err != nil {
		return err
	}

	var entries []resolver.Entry
	if flags.localDir != "" {
		entries, err = resolver.NewLocalResolver(flags.localDir).Resolve(ctx)
	} else {
		entries, err = resolver.NewRemoteResolver(cfg.BaseURL).Resolve(ctx)
	}
	if err != nil {
		log.Error().Err(err).Msg("resolution failed")
		return err
	}
	if len(entries) == 0 {
		log.Warn().Msg("no compiler versions to sync")
		return nil
	}

	sy := syncer.New(st, syncer.Config{
		Bucket:  cfg.Bucket,
		BaseURL: cfg.BaseURL,
		Workers: cfg.Workers,
		Limit:   flags.limit,
		DryRun:  flags.dryRun,
	})

	report, runErr := sy.Run(ctx, entries)
	printReport(report)

	// Per-task failures are reported in the summary but do not change the
	// exit status; only an aborted run does.
	return runErr
}

func printReport(report *syncer.Report) {
	event := log.Info().
		Int("total", report.Total).
		Int("published", report.Published).
		Int("skipped", report.Skipped).
		Int("failed", len(report.Failures)).
		Dur("duration", report.Duration)
	if report.DryRun {
		event = event.Bool("dry_run", true)
	}
	event.Msg("sync completed")

	for _, f := range report.Failures {
		log.Warn().Err(f.Err).Str("version", f.Version.String()).Msg("failed version")
	}
}
