package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-gateway/internal/aggregate"
	"github.com/pdiddy/catalog-gateway/pkg/types"
)

var ppgasCmd = &cobra.Command{
	Use:   "ppgas",
	Short: "Browse the PPGAS graduate program: courses and instructors",
}

// --- overview subcommand ---

var ppgasOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show the program overview with sample courses and instructors",
	RunE:  runPpgasOverview,
}

func runPpgasOverview(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	res := aggregate.BuildProgramHome(context.Background(), s.gateway, s.log)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(res)
	}

	fmt.Println("Courses:")
	printCourseTable(res.Courses)
	fmt.Println("\nInstructors:")
	printInstructorTable(res.Instructors)
	return nil
}

// --- courses subcommands ---

var ppgasCoursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List program courses",
	RunE:  runPpgasCourses,
}

func runPpgasCourses(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")
	res, ok := aggregate.BuildCourseListing(context.Background(), s.gateway, page, limit, s.log)
	if !ok {
		return fmt.Errorf("courses listing unavailable")
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(res)
	}

	printCourseTable(res.Courses)
	printPagination(res.Pagination)
	return nil
}

var ppgasCourseCmd = &cobra.Command{
	Use:   "course <id>",
	Short: "Show a course with its bibliography and instructors",
	Args:  cobra.ExactArgs(1),
	RunE:  runPpgasCourse,
}

func runPpgasCourse(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	res, ok := aggregate.BuildCourseDetail(context.Background(), s.gateway, args[0], s.log)
	if !ok {
		return fmt.Errorf("course %q not found", args[0])
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(res)
	}

	c := res.Course
	fmt.Println(c.Name)
	fmt.Fprintf(os.Stdout, "%s  %d/%s  %d credits\n", c.Code, c.Year, c.Semester, c.Credits)
	if len(res.Subjects) > 0 {
		fmt.Println("Subjects:", strings.Join(res.Subjects, ", "))
	}
	if len(res.Instructors) > 0 {
		fmt.Println("\nInstructors:")
		printInstructorTable(res.Instructors)
	}
	if len(res.Bibliography) > 0 {
		fmt.Println("\nBibliography:")
		printWorkTable(res.Bibliography)
	}
	return nil
}

// --- instructors subcommands ---

var ppgasInstructorsCmd = &cobra.Command{
	Use:   "instructors",
	Short: "List program instructors",
	RunE:  runPpgasInstructors,
}

func runPpgasInstructors(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")
	res, ok := aggregate.BuildInstructorListing(context.Background(), s.gateway, page, limit, s.log)
	if !ok {
		return fmt.Errorf("instructors listing unavailable")
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(res)
	}

	printInstructorTable(res.Instructors)
	printPagination(res.Pagination)
	return nil
}

var ppgasInstructorCmd = &cobra.Command{
	Use:   "instructor <id>",
	Short: "Show an instructor's teaching and authorship profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runPpgasInstructor,
}

func runPpgasInstructor(cmd *cobra.Command, args []string) error {
	s := newStack(cmd)

	res, ok := aggregate.BuildInstructorProfile(context.Background(), s.gateway, args[0], s.log)
	if !ok {
		return fmt.Errorf("instructor %q not found", args[0])
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(res)
	}

	i := res.Instructor
	fmt.Println(i.PreferredName)
	fmt.Fprintf(os.Stdout, "%d courses taught", i.CoursesTaught)
	if i.EarliestYear > 0 {
		fmt.Fprintf(os.Stdout, "  (%d-%d)", i.EarliestYear, i.LatestYear)
	}
	if i.WorksAuthored > 0 {
		fmt.Fprintf(os.Stdout, "  %d works authored", i.WorksAuthored)
	}
	fmt.Println()

	if len(res.Courses) > 0 {
		fmt.Println("\nCourses:")
		printCourseTable(res.Courses)
	}
	if len(res.Bibliography) > 0 {
		fmt.Println("\nBibliography:")
		printWorkTable(res.Bibliography)
	}
	return nil
}

// --- shared formatters ---

func printCourseTable(courses []types.Course) {
	if len(courses) == 0 {
		fmt.Println("No courses found.")
		return
	}
	for _, c := range courses {
		fmt.Fprintf(os.Stdout, "%-10s  %-54s  %-12s  %d/%s\n",
			truncate(c.ID, 10), truncate(c.Name, 54), c.Code, c.Year, c.Semester)
	}
}

func printInstructorTable(instructors []types.Instructor) {
	if len(instructors) == 0 {
		fmt.Println("No instructors found.")
		return
	}
	for _, i := range instructors {
		fmt.Fprintf(os.Stdout, "%-10s  %-40s  %d courses\n",
			truncate(i.PersonID, 10), truncate(i.PreferredName, 40), i.CoursesTaught)
	}
}

func init() {
	ppgasCoursesCmd.Flags().Int("page", 1, "listing page")
	ppgasCoursesCmd.Flags().Int("limit", 20, "courses per page")
	ppgasCoursesCmd.Flags().Bool("json", false, "output as JSON")

	ppgasInstructorsCmd.Flags().Int("page", 1, "listing page")
	ppgasInstructorsCmd.Flags().Int("limit", 20, "instructors per page")
	ppgasInstructorsCmd.Flags().Bool("json", false, "output as JSON")

	ppgasOverviewCmd.Flags().Bool("json", false, "output as JSON")
	ppgasCourseCmd.Flags().Bool("json", false, "output as JSON")
	ppgasInstructorCmd.Flags().Bool("json", false, "output as JSON")

	ppgasCmd.AddCommand(ppgasOverviewCmd)
	ppgasCmd.AddCommand(ppgasCoursesCmd)
	ppgasCmd.AddCommand(ppgasCourseCmd)
	ppgasCmd.AddCommand(ppgasInstructorsCmd)
	ppgasCmd.AddCommand(ppgasInstructorCmd)
	rootCmd.AddCommand(ppgasCmd)
}
