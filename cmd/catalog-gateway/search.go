// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-gateway/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search the catalog with engine fallback",
	Long: `Search routes a query through the strategy chain: a bare or "*" query
browses the catalog listing, structured filters go to the filtered works
backend (which never falls back, so filter semantics hold), and free
text tries the primary full-text engine with a works-backend fallback.

Saved searches (--save) can be replayed later with --from-file.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)
	ctx := context.Background()

	q, err := searchQueryFromFlags(cmd, args)
	if err != nil {
		return err
	}

	res := search.Run(ctx, s.gateway, q, s.cfg.Search, s.log)

	if save, _ := cmd.Flags().GetString("save"); save != "" {
		if err := search.WriteQueryFile(save, q, res); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Saved search to", save)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(res)
	}

	if res.Unavailable {
		fmt.Println("Search is temporarily unavailable.")
		return nil
	}
	printWorkTable(res.Works)
	if len(res.Works) > 0 {
		printPagination(res.Pagination)
		fmt.Fprintf(os.Stdout, "engine: %s\n", res.Engine)
	}
	return nil
}

func searchQueryFromFlags(cmd *cobra.Command, args []string) (search.Query, error) {
	if fromFile, _ := cmd.Flags().GetString("from-file"); fromFile != "" {
		qf, err := search.ReadQueryFile(fromFile)
		if err != nil {
			return search.Query{}, err
		}
		return qf.Query.ToQuery(), nil
	}

	var q search.Query
	if len(args) > 0 {
		q.Text = args[0]
	}
	q.Title, _ = cmd.Flags().GetString("title")
	q.Author, _ = cmd.Flags().GetString("author")
	q.Page, _ = cmd.Flags().GetInt("page")
	q.Limit, _ = cmd.Flags().GetInt("limit")

	q.Filters.WorkType, _ = cmd.Flags().GetString("type")
	q.Filters.YearFrom, _ = cmd.Flags().GetInt("year-from")
	q.Filters.YearTo, _ = cmd.Flags().GetInt("year-to")
	q.Filters.Language, _ = cmd.Flags().GetString("language")
	q.Filters.Venue, _ = cmd.Flags().GetString("venue")
	if cmd.Flags().Changed("peer-reviewed") {
		pr, _ := cmd.Flags().GetBool("peer-reviewed")
		q.Filters.PeerReviewed = &pr
	}
	return q, nil
}

func init() {
	searchCmd.Flags().String("title", "", "search by title")
	searchCmd.Flags().String("author", "", "search by author name")
	searchCmd.Flags().Int("page", 1, "result page")
	searchCmd.Flags().Int("limit", 20, "results per page")
	searchCmd.Flags().String("type", "", "filter by work type (e.g. ARTICLE, BOOK)")
	searchCmd.Flags().Int("year-from", 0, "filter by publication year, lower bound")
	searchCmd.Flags().Int("year-to", 0, "filter by publication year, upper bound")
	searchCmd.Flags().String("language", "", "filter by language code")
	searchCmd.Flags().String("venue", "", "filter by venue name")
	searchCmd.Flags().Bool("peer-reviewed", false, "filter by peer-review status")
	searchCmd.Flags().String("save", "", "save the query and results to a YAML file")
	searchCmd.Flags().String("from-file", "", "replay a saved query file instead of reading flags")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
