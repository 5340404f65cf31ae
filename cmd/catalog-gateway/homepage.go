package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-gateway/internal/aggregate"
)

var homepageCmd = &cobra.Command{
	Use:   "homepage",
	Short: "Assemble the homepage composite",
	Long: `Homepage fetches the four homepage constituents (recent works, venues,
persons, organizations), assembles the statistics block, and caches the
composite as a single unit. A failed constituent substitutes its
documented fallback statistic instead of breaking the page.`,
	RunE: runHomepage,
}

func runHomepage(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	data := aggregate.Homepage(context.Background(), s.gateway, s.cache, s.cfg, s.log)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(data)
	}

	fmt.Fprintf(os.Stdout, "Works: %d  Venues: %d  Authors: %d  Organizations: %d\n\n",
		data.Stats.TotalWorks, data.Stats.TotalVenues,
		data.Stats.TotalAuthors, data.Stats.TotalOrganizations)

	fmt.Println("Recent works:")
	printWorkTable(data.RecentWorks)

	if len(data.TopVenues) > 0 {
		fmt.Println("\nTop venues:")
		for _, v := range data.TopVenues {
			fmt.Fprintf(os.Stdout, "  %-50s  %d works\n", truncate(v.Name, 50), v.WorksCount)
		}
	}
	if len(data.TopOrganizations) > 0 {
		fmt.Println("\nTop organizations:")
		for _, o := range data.TopOrganizations {
			fmt.Fprintf(os.Stdout, "  %-50s  %d researchers\n", truncate(o.Name, 50), o.PersonsCount)
		}
	}
	return nil
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show annual catalog statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	stats := aggregate.BuildAnnualStats(context.Background(), s.gateway, s.log)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(stats)
	}

	fmt.Fprintf(os.Stdout, "Year %d: %d works, %d authors, %d venues\n",
		stats.Year, stats.TotalWorks, stats.TotalAuthors, stats.TotalVenues)
	return nil
}

func init() {
	homepageCmd.Flags().Bool("json", false, "output the composite as JSON")
	statsCmd.Flags().Bool("json", false, "output statistics as JSON")

	rootCmd.AddCommand(homepageCmd)
	rootCmd.AddCommand(statsCmd)
}
