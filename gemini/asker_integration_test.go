//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/timetable"
	"github.com/fwojciec/timetable/gemini"
	"github.com/fwojciec/timetable/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestAsker_Integration_ReturnsAnswer(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	courses := &mock.CourseService{
		FindCoursesFn: func(context.Context, timetable.CourseFilter) ([]*timetable.Course, error) {
			return []*timetable.Course{{
				Code:           "CSC108",
				SemesterPrefix: "H5",
				Semester:       "F",
				Name:           "Introduction to Computer Programming",
				Sections: []*timetable.Section{{
					Name:       "LEC0101",
					Instructor: "A. Smith",
					Location:   "DH2010",
					ParsedTime: timetable.SectionTime{MeetTimes: []timetable.TimeSpan{
						{Day: timetable.Monday, Start: 40, End: 44},
					}},
				}},
			}}, nil
		},
	}

	asker := gemini.NewAsker(client, departments(), courses)

	answer, err := asker.Ask(ctx, "dept-1", "Who teaches LEC0101 of CSC108?")

	require.NoError(t, err)
	assert.Contains(t, answer, "Smith")
}
