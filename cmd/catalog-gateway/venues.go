package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-gateway/internal/aggregate"
)

var venuesCmd = &cobra.Command{
	Use:   "venues",
	Short: "Browse venues and their publications",
	RunE:  runVenuesList,
}

func runVenuesList(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	page, _ := cmd.Flags().GetInt("page")
	res, ok := aggregate.BuildVenueListing(context.Background(), s.gateway, page, s.log)
	if !ok {
		return fmt.Errorf("venues listing unavailable")
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(res)
	}

	for _, v := range res.Venues {
		fmt.Fprintf(os.Stdout, "%-10s  %-50s  %-12s  %d works\n",
			truncate(v.ID, 10), truncate(v.Name, 50), v.Type, v.WorksCount)
	}
	printPagination(res.Pagination)
	return nil
}

var venuesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a venue with its publications",
	Args:  cobra.ExactArgs(1),
	RunE:  runVenuesGet,
}

func runVenuesGet(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	page, _ := cmd.Flags().GetInt("page")
	res, ok := aggregate.BuildVenueDetail(context.Background(), s.gateway, args[0], page, s.log)
	if !ok {
		return fmt.Errorf("venue %q not found", args[0])
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(res)
	}

	v := res.Venue
	fmt.Println(v.Name)
	fmt.Fprintf(os.Stdout, "%s", v.Type)
	if v.PublisherName != "" {
		fmt.Fprintf(os.Stdout, "  %s", v.PublisherName)
	}
	if v.ISSN != "" {
		fmt.Fprintf(os.Stdout, "  ISSN %s", v.ISSN)
	}
	fmt.Fprintf(os.Stdout, "  %d works\n\n", v.WorksCount)

	printWorkTable(res.Publications)
	if len(res.Publications) > 0 {
		printPagination(res.Pagination)
	}
	return nil
}

func init() {
	venuesCmd.Flags().Int("page", 1, "listing page")
	venuesCmd.Flags().Bool("json", false, "output as JSON")

	venuesGetCmd.Flags().Int("page", 1, "publications page")
	venuesGetCmd.Flags().Bool("json", false, "output as JSON")

	venuesCmd.AddCommand(venuesGetCmd)
	rootCmd.AddCommand(venuesCmd)
}
