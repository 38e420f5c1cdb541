package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// QuestionKind selects how a field is asked.
type QuestionKind int

const (
	AskText QuestionKind = iota
	AskSecret
	AskMultiline
	AskToggle
	AskChoice
	AskChoices
)

// Question is one prompt derived from a declared field.
type Question struct {
	Kind  QuestionKind
	Label string
	Help  string
	// Placeholder comes from the placeholder attribute. Terminal prompts
	// show it as a hint, never as a value.
	Placeholder string
	// Default seeds text and multiline prompts.
	Default string
	// Toggle seeds yes/no prompts.
	Toggle bool
	// Choices are the option labels; Selected the preselected subset.
	Choices  []string
	Selected []string
	// Check runs the field rules against a typed answer. Drivers that can
	// validate inline should use it; the renderer checks again regardless.
	Check func(string) error
}

// Hint merges help text and placeholder into one line.
func (q Question) Hint() string {
	switch {
	case q.Placeholder == "":
		return q.Help
	case q.Help == "":
		return "e.g. " + q.Placeholder
	default:
		return q.Help + " (e.g. " + q.Placeholder + ")"
	}
}

// Answer carries the raw response to a Question. Choice answers hold labels.
type Answer struct {
	Text    string
	Toggle  bool
	Choices []string
}

// PromptDriver abstracts the terminal so field prompting can be tested
// without a real TTY.
type PromptDriver interface {
	Ask(ctx context.Context, q Question) (Answer, error)
	Notify(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out io.Writer
}

func newSurveyDriver(out io.Writer) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out}
}

func (d *surveyDriver) Ask(ctx context.Context, q Question) (Answer, error) {
	if err := ctx.Err(); err != nil {
		return Answer{}, err
	}

	var opts []survey.AskOpt
	if q.Check != nil {
		opts = append(opts, survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			return q.Check(s)
		}))
	}

	var (
		answer Answer
		err    error
	)
	switch q.Kind {
	case AskSecret:
		err = survey.AskOne(&survey.Password{Message: q.Label, Help: q.Hint()}, &answer.Text, opts...)
	case AskMultiline:
		err = survey.AskOne(&survey.Multiline{Message: q.Label, Default: q.Default, Help: q.Hint()}, &answer.Text, opts...)
	case AskToggle:
		err = survey.AskOne(&survey.Confirm{Message: q.Label, Default: q.Toggle, Help: q.Hint()}, &answer.Toggle)
	case AskChoice:
		prompt := &survey.Select{Message: q.Label, Options: q.Choices, Help: q.Hint()}
		if len(q.Selected) > 0 {
			prompt.Default = q.Selected[0]
		}
		var picked string
		err = survey.AskOne(prompt, &picked)
		answer.Choices = []string{picked}
	case AskChoices:
		prompt := &survey.MultiSelect{Message: q.Label, Options: q.Choices, Help: q.Hint()}
		if len(q.Selected) > 0 {
			prompt.Default = q.Selected
		}
		err = survey.AskOne(prompt, &answer.Choices)
	default:
		err = survey.AskOne(&survey.Input{Message: q.Label, Default: q.Default, Help: q.Hint()}, &answer.Text, opts...)
	}
	if errors.Is(err, terminal.InterruptErr) {
		return Answer{}, ErrAborted
	}
	if err != nil {
		return Answer{}, fmt.Errorf("tui: ask %q: %w", q.Label, err)
	}
	return answer, nil
}

func (d *surveyDriver) Notify(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}
