package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"scholarship-portal/internal/seo"
)

var sitemapOut string

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Build sitemap.xml from the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		client, err := newAPIClient(cfg, nil)
		if err != nil {
			return err
		}
		body, err := seo.NewBuilder(siteFromConfig(cfg.Site), client).Build(ctx)
		if err != nil {
			return err
		}
		if sitemapOut == "" || sitemapOut == "-" {
			_, err = cmd.OutOrStdout().Write(body)
			return err
		}
		return os.WriteFile(sitemapOut, body, 0o644)
	},
}

func init() {
	sitemapCmd.Flags().StringVarP(&sitemapOut, "out", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(sitemapCmd)
}
