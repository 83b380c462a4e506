package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Question is one prompt for a form field. Multiline questions collect
// text until the editor is closed.
type Question struct {
	Field     string
	Message   string
	Default   string
	Help      string
	Multiline bool
}

// PromptDriver talks to the terminal on behalf of the renderer.
type PromptDriver interface {
	Ask(ctx context.Context, q Question) (string, error)
	Confirm(ctx context.Context, message string, def bool) (bool, error)
	Info(ctx context.Context, msg string) error
}

// SurveyDriver prompts through survey on the given streams.
type SurveyDriver struct {
	stdio terminal.Stdio
}

// NewSurveyDriver binds a driver to in and out. Errors from survey go to
// errOut.
func NewSurveyDriver(in terminal.FileReader, out terminal.FileWriter, errOut terminal.FileWriter) *SurveyDriver {
	return &SurveyDriver{stdio: terminal.Stdio{In: in, Out: out, Err: errOut}}
}

func defaultDriver() PromptDriver {
	return NewSurveyDriver(os.Stdin, os.Stdout, os.Stderr)
}

func (d *SurveyDriver) Ask(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var prompt survey.Prompt = &survey.Input{Message: q.Message, Default: q.Default, Help: q.Help}
	if q.Multiline {
		prompt = &survey.Multiline{Message: q.Message, Default: q.Default, Help: q.Help}
	}
	var answer string
	if err := d.ask(prompt, &answer); err != nil {
		return "", fmt.Errorf("tui: ask %s: %w", q.Field, err)
	}
	return answer, nil
}

func (d *SurveyDriver) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var answer bool
	if err := d.ask(&survey.Confirm{Message: message, Default: def}, &answer); err != nil {
		return false, err
	}
	return answer, nil
}

func (d *SurveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.stdio.Out, msg)
	return err
}

func (d *SurveyDriver) ask(prompt survey.Prompt, answer any) error {
	err := survey.AskOne(prompt, answer, survey.WithStdio(d.stdio.In, d.stdio.Out, d.stdio.Err))
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
