package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-gateway/internal/aggregate"
)

var personsCmd = &cobra.Command{
	Use:   "persons <id>",
	Short: "Show a person with their works",
	Args:  cobra.ExactArgs(1),
	RunE:  runPersons,
}

func runPersons(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	page, _ := cmd.Flags().GetInt("page")
	res, ok := aggregate.BuildPersonWorks(context.Background(), s.gateway, args[0], page, s.log)
	if !ok {
		return fmt.Errorf("person %q not found", args[0])
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(res)
	}

	fmt.Println(res.Person.Name)
	if res.Person.OrganizationName != "" {
		fmt.Println(res.Person.OrganizationName)
	}
	fmt.Fprintf(os.Stdout, "%d works\n\n", res.Person.WorksCount)
	printWorkTable(res.Works)
	if len(res.Works) > 0 {
		printPagination(res.Pagination)
	}
	return nil
}

var signaturesCmd = &cobra.Command{
	Use:   "signatures <id>",
	Short: "Show the works behind an author signature",
	Long: `Signatures resolves an author signature to its works. A failed works
call retries as a quoted-name search, and an unresolvable signature
record is tried as a person id before giving up.`,
	Args: cobra.ExactArgs(1),
	RunE: runSignatures,
}

func runSignatures(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	page, _ := cmd.Flags().GetInt("page")
	res, ok := aggregate.BuildSignatureWorks(context.Background(), s.gateway, args[0], page, s.log)
	if !ok {
		return fmt.Errorf("signature %q not found", args[0])
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(res)
	}

	fmt.Println(res.SignatureName)
	printWorkTable(res.Works)
	if len(res.Works) > 0 {
		printPagination(res.Pagination)
	}
	return nil
}

func init() {
	personsCmd.Flags().Int("page", 1, "works page")
	personsCmd.Flags().Bool("json", false, "output as JSON")

	signaturesCmd.Flags().Int("page", 1, "works page")
	signaturesCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(personsCmd)
	rootCmd.AddCommand(signaturesCmd)
}
