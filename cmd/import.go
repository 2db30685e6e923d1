package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"scholarship-portal/internal/api"
	"scholarship-portal/internal/markdown"
)

var importDryRun bool

// importCmd creates a scholarship post from a Markdown file with YAML
// frontmatter. Taxonomy references may be ids, slugs or names.
var importCmd = &cobra.Command{
	Use:   "import <file.md>",
	Short: "Create a scholarship post from a Markdown file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		doc, err := markdown.ParseFile(args[0])
		if err != nil {
			return err
		}
		client, err := newAPIClient(cfg, nil)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		tax, err := loadTaxonomy(ctx, client)
		if err != nil {
			return fmt.Errorf("load taxonomy: %w", err)
		}
		req, err := doc.PostRequest(tax)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if importDryRun {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(req)
		}
		post, err := client.CreatePost(ctx, req)
		if err != nil {
			return err
		}
		slog.Info("import: post created", "id", post.ID, "slug", post.Slug, "status", post.Status)
		fmt.Fprintf(cmd.OutOrStdout(), "%s/blog/%s\n", cfg.Site.URL, post.Slug)
		return nil
	},
}

func loadTaxonomy(ctx context.Context, c *api.Client) (markdown.Taxonomy, error) {
	var t markdown.Taxonomy
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { t.Categories, err = c.ListCategories(ctx); return })
	g.Go(func() (err error) { t.Countries, err = c.ListCountries(ctx); return })
	g.Go(func() (err error) { t.FundingTypes, err = c.ListFundingTypes(ctx); return })
	g.Go(func() (err error) { t.DegreeLevels, err = c.ListDegreeLevels(ctx); return })
	g.Go(func() (err error) { t.Tags, err = c.ListTags(ctx); return })
	return t, g.Wait()
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "print the request instead of sending it")
	rootCmd.AddCommand(importCmd)
}
