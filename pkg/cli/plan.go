package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/studyhall-lab/studyhall/pkg/cli/config"
	"github.com/studyhall-lab/studyhall/pkg/service/canvas"
)

func cmdPlan() *cli.Command {
	var canvasCfg config.Canvas
	var geminiCfg config.Gemini

	flags := canvasCfg.Flags()
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "plan",
		Aliases: []string{"p"},
		Usage:   "Fetch assignments and print a study plan",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if canvasCfg.BaseURL() == "" {
				return goerr.New("--canvas-base-url is required for plan")
			}

			lms, err := canvas.New(canvasCfg.BaseURL(),
				canvas.WithCookie(canvasCfg.Cookie()),
				canvas.WithDemoFallback(canvasCfg.DemoFallback()),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Canvas client")
			}

			assignments, err := lms.ListAssignments(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to fetch assignments")
			}

			heading := color.New(color.FgCyan, color.Bold)
			heading.Printf("Upcoming assignments (%d)\n", len(assignments))
			for _, a := range assignments {
				due := "no due date"
				if a.DueAt != nil {
					due = a.DueAt.Format("Mon Jan 2 15:04")
				}
				fmt.Printf("  %-40s %-12s %s\n", a.Name, a.CourseCode, due)
			}
			fmt.Println()

			plan, err := geminiCfg.Configure().GenerateStudyPlan(ctx, assignments)
			if err != nil {
				return goerr.Wrap(err, "failed to generate study plan")
			}

			heading.Println("Study plan")
			fmt.Println(plan)
			return nil
		},
	}
}
