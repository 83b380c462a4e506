package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-projectform/pkg/renderers/tui"
)

func execute(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(a)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderWritesInitialPage(t *testing.T) {
	out, err := execute(t, newApp(), "render")
	require.NoError(t, err)

	assert.Contains(t, out, "<title>Projects</title>")
	assert.Contains(t, out, `id="user-input"`)
	assert.Contains(t, out, `<ul></ul>`)
	assert.NotContains(t, out, "<script>")
}

func TestRenderJSONToFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "page.json")

	out, err := execute(t, newApp(), "render", "--renderer", "json", "--output", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)

	var snapshot struct {
		OperationID string            `json:"operationId"`
		Projects    []json.RawMessage `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(data, &snapshot))
	assert.Equal(t, "createProject", snapshot.OperationID)
	assert.Empty(t, snapshot.Projects)
}

func TestRenderUnknownRenderer(t *testing.T) {
	_, err := execute(t, newApp(), "render", "--renderer", "pdf")
	require.Error(t, err)
}

func TestRenderAppliesThemeVariant(t *testing.T) {
	out, err := execute(t, newApp(), "render", "--variant", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, `data-variant="dark"`)
}

func TestRenderOnGoTemplateEngine(t *testing.T) {
	pongo, err := execute(t, newApp(), "render", "--variant", "dark")
	require.NoError(t, err)
	library, err := execute(t, newApp(), "render", "--variant", "dark", "--template-engine", "go-template")
	require.NoError(t, err)
	assert.Equal(t, pongo, library)

	_, err = execute(t, newApp(), "render", "--template-engine", "mustache")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template engine")
}

func TestRenderAppliesPreset(t *testing.T) {
	dir := t.TempDir()
	preset := filepath.Join(dir, "sprint.yaml")
	require.NoError(t, os.WriteFile(preset, []byte(`
submitLabel: ADD SPRINT
fields:
  title:
    label: Goal
    help: "Keep it <em>short</em><script>alert(1)</script>"
`), 0o600))
	file := filepath.Join(dir, "projectform.yml")
	require.NoError(t, os.WriteFile(file, []byte("form:\n  preset: "+preset+"\n"), 0o600))

	out, err := execute(t, newApp(), "--config", file, "render")
	require.NoError(t, err)
	assert.Contains(t, out, "ADD SPRINT")
	assert.Contains(t, out, `<label for="title">Goal</label>`)
	assert.Contains(t, out, `<small class="help">Keep it <em>short</em></small>`)
	assert.NotContains(t, out, "alert(1)")
}

func TestExplicitConfigFileMustExist(t *testing.T) {
	_, err := execute(t, newApp(), "--config", filepath.Join(t.TempDir(), "missing.yml"), "render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestConfiguredOperationMustExist(t *testing.T) {
	file := filepath.Join(t.TempDir(), "projectform.yml")
	require.NoError(t, os.WriteFile(file, []byte(`
form:
  operation: missingOperation
`), 0o600))

	_, err := execute(t, newApp(), "--config", file, "render")
	require.Error(t, err)
}

func TestBindFlagsReportsUnknownFlag(t *testing.T) {
	a := newApp()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("port", 8080, "")

	err := a.bindFlags(fs, map[string]string{
		"server.port": "port",
		"server.host": "hostname",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bind server.host to --hostname")
	assert.NotContains(t, err.Error(), "server.port")

	require.NoError(t, fs.Parse([]string{"--port", "9090"}))
	assert.Equal(t, 9090, a.v.GetInt("server.port"))

	assert.Panics(t, func() {
		a.mustBindFlags(fs, map[string]string{"server.csrf": "csrf"})
	})
}

func TestPromptAddsProjectsAndPrintsList(t *testing.T) {
	a := newApp()
	driver := &scriptedDriver{
		inputs:    []string{"House", "5", "Garden", "1"},
		textAreas: []string{"Build a house", "Plant the trees"},
		confirm:   []bool{true, false},
	}
	a.driver = driver

	out, err := execute(t, a, "prompt")
	require.NoError(t, err)

	var snapshot struct {
		Projects []struct {
			Title  string `json:"title"`
			People int    `json:"people"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &snapshot))
	require.Len(t, snapshot.Projects, 2)
	assert.Equal(t, "House", snapshot.Projects[0].Title)
	assert.Equal(t, 5, snapshot.Projects[0].People)
	assert.Equal(t, "Garden", snapshot.Projects[1].Title)
	assert.Contains(t, driver.info, "House (5 persons assigned)")
}

func TestPromptAbortKeepsAddedProjects(t *testing.T) {
	a := newApp()
	a.driver = &scriptedDriver{
		inputs:    []string{"House", "5"},
		textAreas: []string{"Build a house"},
		confirm:   []bool{true},
	}

	out, err := execute(t, a, "prompt")
	require.NoError(t, err)
	assert.Contains(t, out, `"title":"House"`)
}

type scriptedDriver struct {
	inputs    []string
	textAreas []string
	confirm   []bool
	info      []string
}

func (d *scriptedDriver) Ask(_ context.Context, q tui.Question) (string, error) {
	answers := &d.inputs
	if q.Multiline {
		answers = &d.textAreas
	}
	if len(*answers) == 0 {
		return "", tui.ErrAborted
	}
	val := (*answers)[0]
	*answers = (*answers)[1:]
	return val, nil
}

func (d *scriptedDriver) Confirm(context.Context, string, bool) (bool, error) {
	if len(d.confirm) == 0 {
		return false, errors.New("no confirm scripted")
	}
	val := d.confirm[0]
	d.confirm = d.confirm[1:]
	return val, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.info = append(d.info, msg)
	return nil
}
