package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/net/html"

	"github.com/goliatone/go-projectform/internal/config"
	"github.com/goliatone/go-projectform/internal/logging"
	"github.com/goliatone/go-projectform/pkg/dom"
	"github.com/goliatone/go-projectform/pkg/form"
	"github.com/goliatone/go-projectform/pkg/model"
	pkgopenapi "github.com/goliatone/go-projectform/pkg/openapi"
	"github.com/goliatone/go-projectform/pkg/orchestrator"
	"github.com/goliatone/go-projectform/pkg/renderers/tui"
)

// app carries state shared by the commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *log.Logger
	driver  tui.PromptDriver
}

func newApp() *app {
	return &app{v: viper.New()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "projectform",
		Short: "Project entry form: serve it, fill it in a terminal, or render it",
		Long: `projectform hosts a form for adding projects (title, description, and
team size) above a list of active projects.

Configuration is read from .projectform.yml, PROJECTFORM_* environment
variables (for example PROJECTFORM_SERVER_PORT), and flags, in increasing
order of precedence.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is .projectform.yml)")
	root.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("theme", "", "theme name")
	root.PersistentFlags().String("variant", "", "theme variant")
	root.PersistentFlags().String("template-engine", "pongo2", "page template engine (pongo2, go-template)")
	a.mustBindFlags(root.PersistentFlags(), map[string]string{
		"log.level":       "log-level",
		"theme.name":      "theme",
		"theme.variant":   "variant",
		"template.engine": "template-engine",
	})

	root.AddCommand(newServeCmd(a), newPromptCmd(a), newRenderCmd(a))
	return root
}

// bindFlags binds config keys to the named flags of fs.
func (a *app) bindFlags(fs *pflag.FlagSet, keys map[string]string) error {
	var errs []error
	for key, name := range keys {
		if err := a.v.BindPFlag(key, fs.Lookup(name)); err != nil {
			errs = append(errs, fmt.Errorf("bind %s to --%s: %w", key, name, err))
		}
	}
	return errors.Join(errs...)
}

// mustBindFlags is bindFlags for command construction, where a failed
// binding is a wiring mistake.
func (a *app) mustBindFlags(fs *pflag.FlagSet, keys map[string]string) {
	if err := a.bindFlags(fs, keys); err != nil {
		panic(err)
	}
}

// initConfig reads the config file when present and loads the settings.
func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	config.Configure(a.v, a.cfgFile)
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	if used := a.v.ConfigFileUsed(); used != "" {
		logger.WithField("file", used).Debug("using config file")
	}
	return nil
}

// pipeline builds the orchestrator and form model the configuration selects.
func (a *app) pipeline(ctx context.Context) (*orchestrator.Orchestrator, model.FormModel, error) {
	options := []orchestrator.Option{
		orchestrator.WithLogger(a.logger),
		orchestrator.WithTemplateEngine(a.cfg.Template.Engine),
	}
	if dir := a.cfg.Form.UISchema; dir != "" {
		options = append(options, orchestrator.WithUISchemaFS(os.DirFS(dir)))
	}
	if preset := a.cfg.Form.Preset; preset != "" {
		p, err := orchestrator.LoadPreset(os.DirFS(filepath.Dir(preset)), filepath.Base(preset))
		if err != nil {
			return nil, model.FormModel{}, err
		}
		options = append(options, orchestrator.WithSchemaTransformer(p))
	}

	orch := orchestrator.New(options...)
	req := orchestrator.Request{OperationID: a.cfg.Form.Operation}
	if def := a.cfg.Form.Definition; def != "" {
		req.Source = pkgopenapi.SourceFromFile(def)
	}
	fm, err := orch.Form(ctx, req)
	if err != nil {
		return nil, model.FormModel{}, err
	}
	return orch, fm, nil
}

// mount builds a fresh page and mounts a controller for fm into it.
func (a *app) mount(fm model.FormModel) (*form.Controller, error) {
	root := dom.Element("div", []html.Attribute{dom.Attr("id", "app")})
	return form.New(root, form.WithForm(fm), form.WithLogger(a.logger))
}
