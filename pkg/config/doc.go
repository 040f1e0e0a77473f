// Package config resolves pipegen's runtime configuration.
//
// Sources are layered with koanf, lowest precedence first:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. a config file: the explicit --config path, else .pipegen.toml,
//     pipegen.toml, .pipegen.yaml or .pipegen.yml in the working directory,
//     else $XDG_CONFIG_HOME/pipegen/config.toml
//  3. environment: SERVICES_DIR, WORKFLOWS_DIR, OVERWRITE, DRY_RUN,
//     PIPEGEN_TEMPLATE
//  4. explicitly set command-line flags
//
// OVERWRITE and DRY_RUN only enable their mode when set to exactly "1".
package config
