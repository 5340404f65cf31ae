package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-gateway/internal/search"
)

var liveCmd = &cobra.Command{
	Use:   "live <query>",
	Short: "Multi-type live search across works, authors, venues, and organizations",
	Long: `Live runs the search-as-you-type aggregate: quality-gated works, authors
matched by name, venues and organizations matched by substring, plus
prefix suggestions from the common vocabulary. Sections are independent;
a failed constituent leaves its section empty.`,
	Args: cobra.ExactArgs(1),
	RunE: runLive,
}

func runLive(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	typ, _ := cmd.Flags().GetString("type")
	page, _ := cmd.Flags().GetInt("page")

	res := search.Live(context.Background(), s.gateway, args[0], typ, page, s.log)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(res)
	}

	if len(res.Works) > 0 {
		fmt.Println("Works:")
		printWorkTable(res.Works)
		fmt.Println()
	}
	if len(res.Authors) > 0 {
		fmt.Println("Authors:")
		for _, a := range res.Authors {
			fmt.Fprintf(os.Stdout, "  %-10s  %-40s  %d works\n",
				truncate(a.ID, 10), truncate(a.Name, 40), a.WorksCount)
		}
		fmt.Println()
	}
	if len(res.Venues) > 0 {
		fmt.Println("Venues:")
		for _, v := range res.Venues {
			fmt.Fprintf(os.Stdout, "  %-10s  %-50s  %-10s  %d works\n",
				truncate(v.ID, 10), truncate(v.Name, 50), v.Type, v.WorksCount)
		}
		fmt.Println()
	}
	if len(res.Organizations) > 0 {
		fmt.Println("Organizations:")
		for _, o := range res.Organizations {
			fmt.Fprintf(os.Stdout, "  %-10s  %-50s  %s\n",
				truncate(o.ID, 10), truncate(o.Name, 50), o.Country)
		}
		fmt.Println()
	}
	if len(res.Suggestions) > 0 {
		fmt.Println("Suggestions:", strings.Join(res.Suggestions, ", "))
	}
	fmt.Fprintf(os.Stdout, "%d total results\n", res.TotalResults)
	return nil
}

var autocompleteCmd = &cobra.Command{
	Use:   "autocomplete <prefix>",
	Short: "Autocomplete suggestions for a partial query",
	Args:  cobra.ExactArgs(1),
	RunE:  runAutocomplete,
}

func runAutocomplete(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	typ, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	suggestions := search.Autocomplete(context.Background(), s.gateway, args[0], typ, limit)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(suggestions)
	}

	if len(suggestions) == 0 {
		fmt.Println("No suggestions.")
		return nil
	}
	for _, sg := range suggestions {
		fmt.Fprintf(os.Stdout, "%-12s  %-50s  %s\n",
			sg.Type, truncate(sg.Text, 50), truncate(sg.Preview, 40))
	}
	return nil
}

func init() {
	liveCmd.Flags().String("type", "all", "section to search: all, works, authors, venues, or organizations")
	liveCmd.Flags().Int("page", 1, "result page for the works section")
	liveCmd.Flags().Bool("json", false, "output results as JSON")

	autocompleteCmd.Flags().String("type", "all", "suggestion type to return")
	autocompleteCmd.Flags().Int("limit", 8, "maximum number of suggestions")
	autocompleteCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(liveCmd)
	rootCmd.AddCommand(autocompleteCmd)
}
