// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pdiddy/catalog-gateway/internal/upstream"
	"github.com/pdiddy/catalog-gateway/pkg/types"
)

// programSampleLimit is how many courses and instructors the program
// overview samples.
const programSampleLimit = 10

// ProgramHome is the PPGAS overview: a sample of courses and
// instructors plus the statistics blocks upstream publishes for each.
// Every section is best effort.
type ProgramHome struct {
	Courses         []types.Course     `json:"courses" yaml:"courses"`
	Instructors     []types.Instructor `json:"instructors" yaml:"instructors"`
	CourseStats     map[string]any     `json:"course_stats,omitempty" yaml:"course_stats,omitempty"`
	InstructorStats map[string]any     `json:"instructor_stats,omitempty" yaml:"instructor_stats,omitempty"`
}

// BuildProgramHome assembles the program overview.
func BuildProgramHome(ctx context.Context, f Fetcher, log zerolog.Logger) ProgramHome {
	var res ProgramHome

	if courses, ok := BuildCourseListing(ctx, f, 1, programSampleLimit, log); ok {
		res.Courses = courses.Courses
	}
	if instructors, ok := BuildInstructorListing(ctx, f, 1, programSampleLimit, log); ok {
		res.Instructors = instructors.Instructors
	}

	fetchJSON(ctx, f, upstream.NewRequest("/courses/statistics", nil), &res.CourseStats)
	fetchJSON(ctx, f, upstream.NewRequest("/instructors/statistics", nil), &res.InstructorStats)
	return res
}
