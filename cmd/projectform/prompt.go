package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-projectform/pkg/orchestrator"
	"github.com/goliatone/go-projectform/pkg/renderers/tui"
)

func newPromptCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "prompt",
		Aliases: []string{"p"},
		Short:   "Add projects from the terminal and print the resulting list as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			orch, fm, err := a.pipeline(ctx)
			if err != nil {
				return err
			}
			ctrl, err := a.mount(fm)
			if err != nil {
				return err
			}

			session := tui.New(
				tui.WithPromptDriver(a.driver),
				tui.WithLogger(a.logger),
				tui.WithTheme(tui.Theme{ErrorPrefix: "! "}),
			)
			if _, err := session.Session(ctx, fm, ctrl); err != nil && !errors.Is(err, tui.ErrAborted) {
				return err
			}

			out, err := orch.Render(ctx, orchestrator.RenderRequest{Renderer: "json", Page: ctrl.Page()})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(out, '\n'))
			return err
		},
	}
}
