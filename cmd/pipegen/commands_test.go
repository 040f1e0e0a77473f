package pipegen

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pipegen/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every external input of the CLI at temporary locations
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	for _, name := range []string{"SERVICES_DIR", "WORKFLOWS_DIR", "OVERWRITE", "DRY_RUN", "PIPEGEN_TEMPLATE"} {
		t.Setenv(name, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setupRepo(t *testing.T, services ...string) (servicesDir, workflowsDir string) {
	t.Helper()
	root := t.TempDir()
	servicesDir = filepath.Join(root, "services")
	workflowsDir = filepath.Join(root, ".github", "workflows")
	require.NoError(t, os.MkdirAll(servicesDir, 0755))
	for _, s := range services {
		require.NoError(t, os.MkdirAll(filepath.Join(servicesDir, s), 0755))
	}
	return servicesDir, workflowsDir
}

func TestGenerateWritesOneFilePerService(t *testing.T) {
	isolate(t)
	servicesDir, workflowsDir := setupRepo(t, "alpha", "beta")
	require.NoError(t, os.WriteFile(filepath.Join(servicesDir, "README.md"), []byte("x"), 0644))

	out, err := execute(t, "generate", "--services-dir", servicesDir, "--workflows-dir", workflowsDir)
	require.NoError(t, err)

	for _, s := range []string{"alpha", "beta"} {
		path := filepath.Join(workflowsDir, s+"-ci-cd.yml")
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "name: CI/CD for "+s)
		assert.Contains(t, out, "Generated "+path)
	}
	assert.Contains(t, out, "Generated 2 workflow file(s).")

	entries, err := os.ReadDir(workflowsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRootCommandGenerates(t *testing.T) {
	isolate(t)
	servicesDir, workflowsDir := setupRepo(t, "alpha")
	t.Setenv("SERVICES_DIR", servicesDir)
	t.Setenv("WORKFLOWS_DIR", workflowsDir)

	out, err := execute(t)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(workflowsDir, "alpha-ci-cd.yml"))
	assert.Contains(t, out, "Generated 1 workflow file(s).")
}

func TestGenerateMissingServicesDir(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	missing := filepath.Join(root, "nope")

	_, err := execute(t, "generate", "--services-dir", missing, "--workflows-dir", filepath.Join(root, "wf"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrServicesDirMissing))
	assert.Contains(t, err.Error(), missing)
}

func TestGenerateNoServices(t *testing.T) {
	isolate(t)
	servicesDir, workflowsDir := setupRepo(t)

	out, err := execute(t, "generate", "--services-dir", servicesDir, "--workflows-dir", workflowsDir)
	require.NoError(t, err)
	assert.Contains(t, out, "No services found in "+servicesDir)

	entries, err := os.ReadDir(workflowsDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateSkipsExistingUnlessOverwrite(t *testing.T) {
	isolate(t)
	servicesDir, workflowsDir := setupRepo(t, "alpha")
	require.NoError(t, os.MkdirAll(workflowsDir, 0755))
	path := filepath.Join(workflowsDir, "alpha-ci-cd.yml")
	require.NoError(t, os.WriteFile(path, []byte("custom\n"), 0644))

	out, err := execute(t, "generate", "--services-dir", servicesDir, "--workflows-dir", workflowsDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Skipping "+path)
	assert.Contains(t, out, "No workflow files generated.")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom\n", string(data))

	t.Setenv("OVERWRITE", "1")
	out, err = execute(t, "generate", "--services-dir", servicesDir, "--workflows-dir", workflowsDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated "+path)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: CI/CD for alpha")
}

func TestOverwriteEnvRequiresExactlyOne(t *testing.T) {
	isolate(t)
	servicesDir, workflowsDir := setupRepo(t, "alpha")
	require.NoError(t, os.MkdirAll(workflowsDir, 0755))
	path := filepath.Join(workflowsDir, "alpha-ci-cd.yml")
	require.NoError(t, os.WriteFile(path, []byte("custom\n"), 0644))

	t.Setenv("OVERWRITE", "true")
	out, err := execute(t, "generate", "--services-dir", servicesDir, "--workflows-dir", workflowsDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Skipping "+path)
}

func TestGenerateDryRun(t *testing.T) {
	isolate(t)
	servicesDir, workflowsDir := setupRepo(t, "alpha")

	out, err := execute(t, "generate", "--dry-run", "--services-dir", servicesDir, "--workflows-dir", workflowsDir)
	require.NoError(t, err)

	path := filepath.Join(workflowsDir, "alpha-ci-cd.yml")
	assert.NoFileExists(t, path)
	assert.Contains(t, out, "[dry run] Would generate "+path)
	assert.Contains(t, out, "----- BEGIN "+path+" -----")
	assert.Contains(t, out, "name: CI/CD for alpha")
	assert.Contains(t, out, "[dry run] Would generate 1 workflow file(s).")
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	isolate(t)
	servicesDir, workflowsDir := setupRepo(t, "alpha")
	t.Setenv("DRY_RUN", "1")

	_, err := execute(t, "generate", "--dry-run=false", "--services-dir", servicesDir, "--workflows-dir", workflowsDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(workflowsDir, "alpha-ci-cd.yml"))
}

func TestConfigFileIsUsed(t *testing.T) {
	isolate(t)
	servicesDir, workflowsDir := setupRepo(t, "alpha")
	cfgPath := filepath.Join(t.TempDir(), "pipegen.yaml")
	content := "services_dir: " + servicesDir + "\nworkflows_dir: " + workflowsDir + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	_, err := execute(t, "--config", cfgPath, "generate")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(workflowsDir, "alpha-ci-cd.yml"))
}

func TestListCommand(t *testing.T) {
	isolate(t)
	servicesDir, workflowsDir := setupRepo(t, "alpha", "beta")
	require.NoError(t, os.MkdirAll(workflowsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(workflowsDir, "alpha-ci-cd.yml"), []byte("x\n"), 0644))

	out, err := execute(t, "list", "--services-dir", servicesDir, "--workflows-dir", workflowsDir)
	require.NoError(t, err)
	assert.Contains(t, out, "alpha  "+filepath.Join(workflowsDir, "alpha-ci-cd.yml")+"  exists")
	assert.Contains(t, out, "beta   "+filepath.Join(workflowsDir, "beta-ci-cd.yml")+"  missing")
	assert.NoFileExists(t, filepath.Join(workflowsDir, "beta-ci-cd.yml"))
}

func TestTemplateCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "template")
	require.NoError(t, err)
	assert.Contains(t, out, "[[ .Service ]]")

	out, err = execute(t, "template", "payments", "--display-name", "Payments API")
	require.NoError(t, err)
	assert.Contains(t, out, "name: CI/CD for payments")
	assert.Contains(t, out, "Payments API")
	assert.NotContains(t, out, "[[")
}

func TestConfigCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "config", "--services-dir", "apps")
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, toml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "apps", decoded["services_dir"])
	assert.Equal(t, ".github/workflows", decoded["workflows_dir"])

	out, err = execute(t, "config", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "# pipegen defaults.")
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pipegen version")
}

func TestDocsCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "docs")
	require.NoError(t, err)
	assert.Contains(t, out, "pipegen")
}

func TestManCommand(t *testing.T) {
	isolate(t)
	dir := filepath.Join(t.TempDir(), "man")

	_, err := execute(t, "man", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "pipegen.1"))
	assert.FileExists(t, filepath.Join(dir, "pipegen-generate.1"))
}

func TestRootRejectsArguments(t *testing.T) {
	isolate(t)

	_, err := execute(t, "bogus")
	assert.Error(t, err)
}
