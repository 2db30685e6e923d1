package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"scholarship-portal/internal/redisclient"
	"scholarship-portal/internal/storage"
	"scholarship-portal/worker"
)

var digestForce bool

// digestCmd writes the digest for the current period once and exits.
var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Write the scholarship digest for the current period",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		var store *storage.RedisStore
		if cfg.Redis.Enabled {
			rdb := redisclient.New(cfg.Redis)
			defer rdb.Close()
			store = storage.NewRedisStore(rdb)
		}
		client, err := newAPIClient(cfg, nil)
		if err != nil {
			return err
		}
		writer, err := newWriter(cfg.OpenAI)
		if err != nil {
			return err
		}
		d, err := newDigestBuilder(cfg, client, store, writer)
		if err != nil {
			return err
		}
		path, err := d.Build(ctx, digestForce)
		if errors.Is(err, worker.ErrTooFewItems) {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return nil
		}
		if err != nil {
			return err
		}
		if path == "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "digest already written for this period, use --force to rewrite")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	digestCmd.Flags().BoolVar(&digestForce, "force", false, "rewrite even if this period was already published")
	rootCmd.AddCommand(digestCmd)
}
