package gemini

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/studyhall-lab/studyhall/pkg/domain/model"
)

//go:embed prompt/study_plan.md
var studyPlanPromptTmpl string

//go:embed prompt/assignment_help.md
var assignmentHelpPromptTmpl string

var (
	studyPlanPrompt      = template.Must(template.New("study_plan").Parse(studyPlanPromptTmpl))
	assignmentHelpPrompt = template.Must(template.New("assignment_help").Parse(assignmentHelpPromptTmpl))
)

const promptDateFormat = "Jan 2, 2006"

type studyPlanItem struct {
	Name       string
	CourseName string
	Due        string
}

type studyPlanView struct {
	Assignments []studyPlanItem
}

type assignmentHelpView struct {
	Name        string
	CourseName  string
	CourseCode  string
	Description string
	Due         string
	Points      float64
	Question    string
}

// pendingAssignments keeps only assignments that have a due date and no
// submission yet, mirroring what the study plan prompt should cover.
func pendingAssignments(assignments []*model.AssignmentWithCourse) []*model.AssignmentWithCourse {
	var pending []*model.AssignmentWithCourse
	for _, a := range assignments {
		if a.DueAt == nil || a.SubmittedAt != nil {
			continue
		}
		pending = append(pending, a)
	}
	return pending
}

func buildStudyPlanPrompt(assignments []*model.AssignmentWithCourse) (string, error) {
	view := studyPlanView{}
	for _, a := range assignments {
		view.Assignments = append(view.Assignments, studyPlanItem{
			Name:       a.Name,
			CourseName: a.CourseName,
			Due:        a.DueAt.Format(promptDateFormat),
		})
	}

	var buf bytes.Buffer
	if err := studyPlanPrompt.Execute(&buf, view); err != nil {
		return "", goerr.Wrap(err, "failed to render study plan prompt")
	}
	return buf.String(), nil
}

func buildAssignmentHelpPrompt(a *model.AssignmentWithCourse, question string) (string, error) {
	due := "Not specified"
	if a.DueAt != nil {
		due = a.DueAt.Format(promptDateFormat)
	}

	view := assignmentHelpView{
		Name:        a.Name,
		CourseName:  a.CourseName,
		CourseCode:  a.CourseCode,
		Description: a.Description,
		Due:         due,
		Points:      a.PointsPossible,
		Question:    question,
	}

	var buf bytes.Buffer
	if err := assignmentHelpPrompt.Execute(&buf, view); err != nil {
		return "", goerr.Wrap(err, "failed to render assignment help prompt")
	}
	return buf.String(), nil
}
