// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/pdiddy/catalog-gateway/internal/normalize"
	"github.com/pdiddy/catalog-gateway/internal/upstream"
	"github.com/pdiddy/catalog-gateway/pkg/types"
)

// The courses and instructors endpoints wrap their lists under
// "courses"/"instructors" keys instead of the usual data envelope, and
// course detail responses are bare top-level objects.

// fetchJSON resolves a request and unmarshals the whole body into dst.
func fetchJSON(ctx context.Context, f Fetcher, req upstream.Request, dst any) bool {
	out := f.Fetch(ctx, req)
	if !out.OK() {
		return false
	}
	return json.Unmarshal(out.Payload, dst) == nil
}

type rawCourse struct {
	ID                normalize.FlexID `json:"id"`
	Name              string           `json:"name"`
	Code              string           `json:"code"`
	Year              int              `json:"year"`
	Semester          string           `json:"semester"`
	Credits           int              `json:"credits"`
	InstructorCount   int              `json:"instructor_count"`
	BibliographyCount int              `json:"bibliography_count"`
}

func (c rawCourse) course() types.Course {
	return types.Course{
		ID:                string(c.ID),
		Name:              c.Name,
		Code:              c.Code,
		Year:              c.Year,
		Semester:          c.Semester,
		Credits:           c.Credits,
		InstructorCount:   c.InstructorCount,
		BibliographyCount: c.BibliographyCount,
	}
}

type rawInstructor struct {
	PersonID      normalize.FlexID `json:"person_id"`
	PreferredName string           `json:"preferred_name"`
	CoursesTaught int              `json:"courses_taught"`
	EarliestYear  int              `json:"earliest_year"`
	LatestYear    int              `json:"latest_year"`
}

func (i rawInstructor) instructor() types.Instructor {
	return types.Instructor{
		PersonID:      string(i.PersonID),
		PreferredName: i.PreferredName,
		CoursesTaught: i.CoursesTaught,
		EarliestYear:  i.EarliestYear,
		LatestYear:    i.LatestYear,
	}
}

// CourseListing is one page of the program's courses.
type CourseListing struct {
	Courses    []types.Course       `json:"courses" yaml:"courses"`
	Pagination types.PaginationInfo `json:"pagination" yaml:"pagination"`
}

// BuildCourseListing pages through /courses.
func BuildCourseListing(ctx context.Context, f Fetcher, page, limit int, log zerolog.Logger) (CourseListing, bool) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var body struct {
		Courses    []rawCourse              `json:"courses"`
		Pagination *normalize.RawPagination `json:"pagination"`
	}
	if !fetchJSON(ctx, f, upstream.NewRequest("/courses", upstream.Params{"page": page, "limit": limit}), &body) {
		log.Warn().Msg("courses listing unavailable")
		return CourseListing{}, false
	}

	res := CourseListing{Courses: make([]types.Course, 0, len(body.Courses))}
	for _, c := range body.Courses {
		res.Courses = append(res.Courses, c.course())
	}
	res.Pagination = normalize.Pagination(body.Pagination, page, limit, len(res.Courses))
	return res, true
}

// CourseDetail is the course page with its bibliography and teaching
// staff.
type CourseDetail struct {
	Course       types.Course           `json:"course" yaml:"course"`
	Bibliography []types.NormalizedWork `json:"bibliography" yaml:"bibliography"`
	Instructors  []types.Instructor     `json:"instructors" yaml:"instructors"`
	Subjects     []string               `json:"subjects" yaml:"subjects"`
}

// BuildCourseDetail assembles the course page from the bare top-level
// course object.
func BuildCourseDetail(ctx context.Context, f Fetcher, courseID string, log zerolog.Logger) (CourseDetail, bool) {
	var body struct {
		rawCourse
		Bibliography []normalize.RawWork `json:"bibliography"`
		Instructors  []rawInstructor     `json:"instructors"`
		Subjects     []string            `json:"subjects"`
	}
	if !fetchJSON(ctx, f, upstream.NewRequest("/courses/"+courseID, nil), &body) || body.Name == "" {
		return CourseDetail{}, false
	}

	res := CourseDetail{
		Course:       body.course(),
		Bibliography: lenientWorks(body.Bibliography),
		Subjects:     body.Subjects,
	}
	for _, i := range body.Instructors {
		res.Instructors = append(res.Instructors, i.instructor())
	}
	return res, true
}

// InstructorListing is one page of the program's instructors.
type InstructorListing struct {
	Instructors []types.Instructor   `json:"instructors" yaml:"instructors"`
	Pagination  types.PaginationInfo `json:"pagination" yaml:"pagination"`
}

// BuildInstructorListing pages through /instructors.
func BuildInstructorListing(ctx context.Context, f Fetcher, page, limit int, log zerolog.Logger) (InstructorListing, bool) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var body struct {
		Instructors []rawInstructor          `json:"instructors"`
		Pagination  *normalize.RawPagination `json:"pagination"`
	}
	if !fetchJSON(ctx, f, upstream.NewRequest("/instructors", upstream.Params{"page": page, "limit": limit}), &body) {
		log.Warn().Msg("instructors listing unavailable")
		return InstructorListing{}, false
	}

	res := InstructorListing{}
	for _, i := range body.Instructors {
		res.Instructors = append(res.Instructors, i.instructor())
	}
	res.Pagination = normalize.Pagination(body.Pagination, page, limit, len(res.Instructors))
	return res, true
}

// InstructorProfile is the instructor page, merged from the statistics
// endpoint's person and profile blocks plus the instructor's courses.
type InstructorProfile struct {
	Instructor   types.Instructor       `json:"instructor" yaml:"instructor"`
	Courses      []types.Course         `json:"courses" yaml:"courses"`
	Bibliography []types.NormalizedWork `json:"bibliography" yaml:"bibliography"`
	Subjects     json.RawMessage        `json:"subjects,omitempty" yaml:"-"`
}

// BuildInstructorProfile assembles the instructor page. The statistics
// call is required; the courses call is best effort.
func BuildInstructorProfile(ctx context.Context, f Fetcher, instructorID string, log zerolog.Logger) (InstructorProfile, bool) {
	var body struct {
		Person *struct {
			ID            normalize.FlexID `json:"id"`
			PreferredName string           `json:"preferred_name"`
		} `json:"person"`
		TeachingProfile struct {
			CoursesTaught         int `json:"courses_taught"`
			BibliographyItemsUsed int `json:"bibliography_items_used"`
			TeachingStartYear     int `json:"teaching_start_year"`
			TeachingEndYear       int `json:"teaching_end_year"`
			TeachingSpanYears     int `json:"teaching_span_years"`
			UniqueCollaborators   int `json:"unique_collaborators"`
			ProgramsCount         int `json:"programs_count"`
		} `json:"teaching_profile"`
		AuthorshipProfile struct {
			WorksAuthored int `json:"works_authored"`
		} `json:"authorship_profile"`
		RecentAuthoredWorks []normalize.RawWork `json:"recent_authored_works"`
		SubjectExpertise    json.RawMessage     `json:"subject_expertise"`
	}
	if !fetchJSON(ctx, f, upstream.NewRequest("/instructors/"+instructorID+"/statistics", nil), &body) || body.Person == nil {
		return InstructorProfile{}, false
	}

	res := InstructorProfile{
		Instructor: types.Instructor{
			PersonID:                string(body.Person.ID),
			PreferredName:           body.Person.PreferredName,
			CoursesTaught:           body.TeachingProfile.CoursesTaught,
			BibliographyContributed: body.TeachingProfile.BibliographyItemsUsed,
			EarliestYear:            body.TeachingProfile.TeachingStartYear,
			LatestYear:              body.TeachingProfile.TeachingEndYear,
			TeachingSpanYears:       body.TeachingProfile.TeachingSpanYears,
			WorksAuthored:           body.AuthorshipProfile.WorksAuthored,
			UniqueCollaborators:     body.TeachingProfile.UniqueCollaborators,
			ProgramsCount:           body.TeachingProfile.ProgramsCount,
		},
		Bibliography: lenientWorks(body.RecentAuthoredWorks),
		Subjects:     body.SubjectExpertise,
	}
	res.Courses = instructorCourses(ctx, f, instructorID, log)
	return res, true
}

// instructorCourses tolerates both a bare course list and a wrapped
// {"courses": [...]} body.
func instructorCourses(ctx context.Context, f Fetcher, instructorID string, log zerolog.Logger) []types.Course {
	out := f.Fetch(ctx, upstream.NewRequest("/instructors/"+instructorID+"/courses", nil))
	if !out.OK() {
		log.Debug().Str("instructor_id", instructorID).Msg("instructor courses unavailable")
		return nil
	}

	var list []rawCourse
	if json.Unmarshal(out.Payload, &list) != nil {
		var wrapped struct {
			Courses []rawCourse `json:"courses"`
		}
		if json.Unmarshal(out.Payload, &wrapped) != nil {
			return nil
		}
		list = wrapped.Courses
	}

	courses := make([]types.Course, 0, len(list))
	for _, c := range list {
		courses = append(courses, c.course())
	}
	return courses
}
