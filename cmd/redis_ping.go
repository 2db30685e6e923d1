package cmd

import (
	"context"
	"fmt"
	"time"

	"scholarship-portal/internal/redisclient"

	"github.com/spf13/cobra"
)

var pingTimeout time.Duration

// pingCmd checks the Redis server backing the response cache and digest
// bookkeeping. It works even when redis.enabled is false.
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Ping Redis and print PONG with the round trip",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()

		start := time.Now()
		res, err := rdb.Ping(ctx).Result()
		if err != nil {
			return fmt.Errorf("ping %s: %w", cfg.Redis.Addr, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %s)\n", res, cfg.Redis.Addr, time.Since(start).Round(time.Millisecond))
		if !cfg.Redis.Enabled {
			fmt.Fprintln(cmd.ErrOrStderr(), "note: redis.enabled is false, serve will use the in-memory cache")
		}
		return nil
	},
}

func init() {
	pingCmd.Flags().DurationVar(&pingTimeout, "timeout", 2*time.Second, "ping timeout")
	redisCmd.AddCommand(pingCmd)
}
