package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/pdiddy/catalog-gateway/pkg/types"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

func printWorkTable(works []types.NormalizedWork) {
	if len(works) == 0 {
		fmt.Println("No works found.")
		return
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-54s  %-30s  %-6s  %s\n",
		"ID", "Title", "Authors", "Year", "Score")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, w := range works {
		fmt.Fprintf(os.Stdout, "%-10s  %-54s  %-30s  %-6s  %d\n",
			truncate(w.ID, 10), truncate(w.Title, 54),
			truncate(w.FormattedAuthors, 30), w.DisplayYear, w.QualityScore)
	}
}

func printPagination(p types.PaginationInfo) {
	fmt.Fprintf(os.Stdout, "\npage %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
}
