package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"bookrec/internal/config"
	"bookrec/internal/logger"
	"bookrec/internal/platform/googlebooks"
	"bookrec/internal/recommend"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		topN    int
		asJSON  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "recommend <genre>",
		Short: "Print the highest rated Google Books titles for a genre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnvFiles()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if verbose {
				logger.SetLevel("debug")
			} else {
				logger.SetLevel("warn")
			}

			client := googlebooks.NewClient(googlebooks.Options{
				BaseURL:    cfg.Upstream.BaseURL,
				APIKey:     cfg.Upstream.APIKey,
				UserAgent:  cfg.Upstream.UserAgent,
				Timeout:    cfg.Upstream.Timeout,
				RPS:        cfg.Upstream.RPS,
				MaxRetries: cfg.Upstream.MaxRetries,
			})
			svc := recommend.NewService(recommend.NewCatalogFetcher(client, 0), nil, nil)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return run(ctx, cmd.OutOrStdout(), svc, args[0], topN, asJSON)
		},
	}

	cmd.Flags().IntVarP(&topN, "n", "n", recommend.DefaultTopN, "number of books to print")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a list")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log upstream requests")
	return cmd
}

func run(ctx context.Context, out io.Writer, svc *recommend.Service, genre string, n int, asJSON bool) error {
	res, err := svc.TopBooks(ctx, genre, n)
	if err != nil {
		if recommend.IsTransport(err) && len(res.Books) > 0 {
			fmt.Fprintf(out, "warning: catalog failed part way, ranking %d fetched books\n", len(res.Books))
		} else {
			return fmt.Errorf("fetch %q: %w", genre, err)
		}
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Books)
	}

	if len(res.Books) == 0 {
		fmt.Fprintf(out, "No books fetched for genre '%s'.\n", genre)
		return nil
	}
	fmt.Fprintf(out, "Top %d books in genre '%s':\n", len(res.Books), genre)
	for i, b := range res.Books {
		fmt.Fprintf(out, "%d. %s by %s - Rating: %.1f\n", i+1, b.Title, b.Author, b.Rating)
	}
	return nil
}
