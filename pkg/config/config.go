package config

import (
	"github.com/arthur-debert/pipegen/pkg/errors"
	"github.com/arthur-debert/pipegen/pkg/logging"
	"github.com/arthur-debert/pipegen/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// Config is the resolved runtime configuration. It is not mutated after Load.
type Config struct {
	ServicesDir  string `koanf:"services_dir" toml:"services_dir"`
	WorkflowsDir string `koanf:"workflows_dir" toml:"workflows_dir"`
	Overwrite    bool   `koanf:"overwrite" toml:"overwrite"`
	DryRun       bool   `koanf:"dry_run" toml:"dry_run"`
	Template     string `koanf:"template" toml:"template"`

	// Source is the config file that was loaded, if any
	Source string `koanf:"-" toml:"-"`
}

// Default returns the configuration used when nothing overrides the embedded defaults
func Default() *Config {
	return &Config{
		ServicesDir:  "services",
		WorkflowsDir: ".github/workflows",
	}
}

// CheckServicesDir fails with SERVICES_DIR_MISSING unless the services directory exists
func (c *Config) CheckServicesDir(fsys types.FS) error {
	info, err := fsys.Stat(c.ServicesDir)
	if err != nil || !info.IsDir() {
		return errors.Newf(errors.ErrServicesDirMissing, "services directory %q does not exist", c.ServicesDir).
			WithDetail("path", c.ServicesDir)
	}
	return nil
}

// Prepare checks the run preconditions and creates the workflows directory.
// A missing services directory is fatal and leaves the filesystem untouched.
func (c *Config) Prepare(fsys types.FS) error {
	logger := logging.GetLogger("config")

	if err := c.CheckServicesDir(fsys); err != nil {
		return err
	}

	if err := fsys.MkdirAll(c.WorkflowsDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create workflows directory %s", c.WorkflowsDir).
			WithDetail("path", c.WorkflowsDir)
	}

	logger.Debug().Str("workflowsDir", c.WorkflowsDir).Msg("Workflows directory ready")
	return nil
}

// Encode renders the configuration as TOML, in the same shape a config file uses
func (c *Config) Encode() ([]byte, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return out, nil
}
