// Package gemini answers questions about a department's timetable using
// Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/timetable"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Asker implements timetable.Asker at compile time.
var _ timetable.Asker = (*Asker)(nil)

// Asker implements timetable.Asker using Google Gemini.
type Asker struct {
	client      *genai.Client
	departments timetable.DepartmentService
	courses     timetable.CourseService
	model       string
}

// Option configures an Asker.
type Option func(*Asker)

// WithModel sets the Gemini model name.
func WithModel(model string) Option {
	return func(a *Asker) {
		a.model = model
	}
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, departments timetable.DepartmentService, courses timetable.CourseService, opts ...Option) *Asker {
	a := &Asker{
		client:      client,
		departments: departments,
		courses:     courses,
		model:       DefaultModel,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ask answers a natural language question about a department's courses.
func (a *Asker) Ask(ctx context.Context, departmentID, question string) (string, error) {
	if departmentID == "" {
		return "", timetable.Errorf(timetable.EINVALID, "department ID required")
	}
	if strings.TrimSpace(question) == "" {
		return "", timetable.Errorf(timetable.EINVALID, "question required")
	}

	dept, err := a.departments.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return "", err
	}

	courses, err := a.courses.FindCourses(ctx, timetable.CourseFilter{DepartmentID: &departmentID})
	if err != nil {
		return "", err
	}
	if len(courses) == 0 {
		return "", timetable.Errorf(timetable.ENOTFOUND, "no courses found for department %q", dept.Code)
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(dept, courses, question)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", timetable.Errorf(timetable.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about a university course timetable. " +
					"Answer based only on the timetable provided. Times are 24-hour local times and \"--:--\" means the time is unknown. " +
					"If the answer is not in the timetable, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the timetable and question.
func BuildUserPrompt(dept *timetable.Department, courses []*timetable.Course, question string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<timetable department=%q name=%q>\n", dept.Code, dept.Name)
	sb.WriteString(timetable.FormatCourses(courses))
	sb.WriteString("\n</timetable>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
