package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-projectform/pkg/orchestrator"
	"github.com/goliatone/go-projectform/pkg/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		rendererName string
		output       string
	)
	cmd := &cobra.Command{
		Use:     "render",
		Aliases: []string{"r"},
		Short:   "Write the initial page to stdout or a file",
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

			out, err := orch.Render(ctx, orchestrator.RenderRequest{
				Renderer:     rendererName,
				Page:         ctrl.Page(),
				Options:      render.RenderOptions{},
				ThemeName:    a.cfg.Theme.Name,
				ThemeVariant: a.cfg.Theme.Variant,
			})
			if err != nil {
				return err
			}
			if output != "" {
				return os.WriteFile(output, out, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&rendererName, "renderer", "r", "vanilla", "renderer to use (vanilla, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
