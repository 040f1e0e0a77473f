package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/pipegen/pkg/errors"
	"github.com/arthur-debert/pipegen/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Keys shared by config files, the environment and flag overrides.
const (
	KeyServicesDir  = "services_dir"
	KeyWorkflowsDir = "workflows_dir"
	KeyOverwrite    = "overwrite"
	KeyDryRun       = "dry_run"
	KeyTemplate     = "template"
)

// Environment variables read by the resolver
const (
	EnvServicesDir  = "SERVICES_DIR"
	EnvWorkflowsDir = "WORKFLOWS_DIR"
	EnvOverwrite    = "OVERWRITE"
	EnvDryRun       = "DRY_RUN"
	EnvTemplate     = "PIPEGEN_TEMPLATE"
)

// projectConfigFiles are looked up, in order, in the working directory
var projectConfigFiles = []string{".pipegen.toml", "pipegen.toml", ".pipegen.yaml", ".pipegen.yml"}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// ConfigFile is an explicit config file path. It must exist when set.
	ConfigFile string
	// WorkDir is searched for project config files. Defaults to ".".
	WorkDir string
	// Overrides are applied last, keyed by the Key* constants.
	// Callers only include values the user explicitly set.
	Overrides map[string]interface{}
}

// Load resolves the configuration from defaults, config file, environment and overrides
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Config file
	path, err := resolveConfigFile(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	if err := k.Load(env.ProviderWithValue("", ".", envToKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	cfg.Source = path
	logger.Debug().
		Str("servicesDir", cfg.ServicesDir).
		Str("workflowsDir", cfg.WorkflowsDir).
		Bool("overwrite", cfg.Overwrite).
		Bool("dryRun", cfg.DryRun).
		Str("template", cfg.Template).
		Msg("Configuration resolved")

	return &cfg, nil
}

// envToKey maps the recognised environment variables onto config keys.
// Returning an empty key makes koanf ignore the variable.
func envToKey(name, value string) (string, interface{}) {
	switch name {
	case EnvServicesDir:
		if value == "" {
			return "", nil
		}
		return KeyServicesDir, value
	case EnvWorkflowsDir:
		if value == "" {
			return "", nil
		}
		return KeyWorkflowsDir, value
	case EnvOverwrite:
		return KeyOverwrite, value == "1"
	case EnvDryRun:
		return KeyDryRun, value == "1"
	case EnvTemplate:
		if value == "" {
			return "", nil
		}
		return KeyTemplate, value
	}
	return "", nil
}

func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", opts.ConfigFile).
				WithDetail("path", opts.ConfigFile)
		}
		return opts.ConfigFile, nil
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}
	for _, name := range projectConfigFiles {
		path := filepath.Join(workDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	userPath := userConfigPath()
	if info, err := os.Stat(userPath); err == nil && !info.IsDir() {
		return userPath, nil
	}
	return "", nil
}

// userConfigPath honors XDG_CONFIG_HOME set after process start
func userConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, "pipegen", "config.toml")
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}
