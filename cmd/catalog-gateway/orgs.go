package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-gateway/internal/aggregate"
)

var orgsCmd = &cobra.Command{
	Use:     "organizations",
	Aliases: []string{"orgs"},
	Short:   "Browse organizations and their research output",
	RunE:    runOrgsList,
}

func runOrgsList(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	page, _ := cmd.Flags().GetInt("page")
	res, ok := aggregate.BuildOrganizationListing(context.Background(), s.gateway, page, s.log)
	if !ok {
		return fmt.Errorf("organizations listing unavailable")
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(res)
	}

	for _, o := range res.Organizations {
		fmt.Fprintf(os.Stdout, "%-10s  %-50s  %-4s  %d researchers\n",
			truncate(o.ID, 10), truncate(o.Name, 50), o.Country, o.PersonsCount)
	}
	printPagination(res.Pagination)
	return nil
}

var orgsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an organization with its works",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrgsGet,
}

func runOrgsGet(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	page, _ := cmd.Flags().GetInt("page")
	res, ok := aggregate.BuildOrganizationDetail(context.Background(), s.gateway, args[0], page, s.log)
	if !ok {
		return fmt.Errorf("organization %q not found", args[0])
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(res)
	}

	o := res.Organization
	fmt.Println(o.Name)
	fmt.Fprintf(os.Stdout, "%s  %s  %d researchers\n\n", o.Type, o.Country, o.PersonsCount)

	if res.ShowingRecent {
		fmt.Println("Recent works:")
	}
	printWorkTable(res.Works)
	if len(res.Works) > 0 {
		printPagination(res.Pagination)
	}
	return nil
}

func init() {
	orgsCmd.Flags().Int("page", 1, "listing page")
	orgsCmd.Flags().Bool("json", false, "output as JSON")

	orgsGetCmd.Flags().Int("page", 1, "works page")
	orgsGetCmd.Flags().Bool("json", false, "output as JSON")

	orgsCmd.AddCommand(orgsGetCmd)
	rootCmd.AddCommand(orgsCmd)
}
