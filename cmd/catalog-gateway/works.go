package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-gateway/internal/aggregate"
	"github.com/pdiddy/catalog-gateway/internal/search"
)

var worksCmd = &cobra.Command{
	Use:   "works",
	Short: "Browse and inspect catalog works",
}

// --- list subcommand ---

var worksListCmd = &cobra.Command{
	Use:   "list",
	Short: "Browse the catalog listing",
	RunE:  runWorksList,
}

func runWorksList(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")

	res := search.Run(context.Background(), s.gateway,
		search.Query{Page: page, Limit: limit}, s.cfg.Search, s.log)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(res)
	}

	if res.Unavailable {
		fmt.Println("Catalog is temporarily unavailable.")
		return nil
	}
	printWorkTable(res.Works)
	if len(res.Works) > 0 {
		printPagination(res.Pagination)
	}
	return nil
}

// --- get subcommand ---

var worksGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a work with its metrics, references, and related works",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorksGet,
}

func runWorksGet(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	detail, ok := aggregate.BuildWorkDetail(context.Background(), s.gateway, args[0], s.log)
	if !ok {
		return fmt.Errorf("work %q not found", args[0])
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(detail)
	}

	w := detail.Work
	fmt.Println(w.Title)
	if w.FormattedAuthors != "" {
		fmt.Println(w.FormattedAuthors)
	}
	fmt.Fprintf(os.Stdout, "%s  %s", w.FormattedType, w.DisplayYear)
	if w.Venue != nil && w.Venue.Name != "" {
		fmt.Fprintf(os.Stdout, "  %s", w.Venue.Name)
	}
	fmt.Println()
	if w.DOIURL != "" {
		fmt.Println(w.DOIURL)
	}
	if w.Abstract != "" {
		fmt.Println("\n" + w.Abstract)
	}
	if len(detail.Affiliations) > 0 {
		fmt.Println("\nAffiliations:", strings.Join(detail.Affiliations, "; "))
	}
	if related := detail.Related(); len(related) > 0 {
		fmt.Println("\nRelated works:")
		for _, r := range related {
			fmt.Fprintf(os.Stdout, "  %-10s  %-60s  %s\n",
				truncate(r.ID, 10), truncate(r.Title, 60), r.DisplayYear)
		}
	}
	return nil
}

// --- batch subcommand ---

var worksBatchCmd = &cobra.Command{
	Use:   "batch <id>...",
	Short: "Resolve up to 100 works by id, skipping failures",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWorksBatch,
}

func runWorksBatch(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	works, err := aggregate.BatchWorks(context.Background(), s.gateway, args, s.log)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(works)
	}

	printWorkTable(works)
	fmt.Fprintf(os.Stdout, "\n%d of %d resolved\n", len(works), len(args))
	return nil
}

func init() {
	worksListCmd.Flags().Int("page", 1, "result page")
	worksListCmd.Flags().Int("limit", 20, "results per page")
	worksListCmd.Flags().Bool("json", false, "output results as JSON")

	worksGetCmd.Flags().Bool("json", false, "output the work detail as JSON")
	worksBatchCmd.Flags().Bool("json", false, "output results as JSON")

	worksCmd.AddCommand(worksListCmd)
	worksCmd.AddCommand(worksGetCmd)
	worksCmd.AddCommand(worksBatchCmd)
	rootCmd.AddCommand(worksCmd)
}
