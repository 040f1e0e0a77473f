package pipegen

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Generate per-service CI/CD workflows from one template"
	MsgGenerateShort   = "Generate one workflow file per service"
	MsgListShort       = "List discovered services and their workflow files"
	MsgTemplateShort   = "Print the workflow template, optionally rendered for a service"
	MsgConfigShort     = "Print the resolved configuration as TOML"
	MsgWatchShort      = "Regenerate workflows when services are added or removed"
	MsgDocsShort       = "Show the pipegen guide"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages into a directory"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagNoColor      = "Disable colored output"
	MsgFlagConfig       = "Config file (default .pipegen.toml, then ~/.config/pipegen/config.toml)"
	MsgFlagServicesDir  = "Directory whose subdirectories are services (env SERVICES_DIR)"
	MsgFlagWorkflowsDir = "Directory the workflow files are written to (env WORKFLOWS_DIR)"
	MsgFlagOverwrite    = "Regenerate workflow files that already exist (env OVERWRITE=1)"
	MsgFlagDryRun       = "Print workflows instead of writing them (env DRY_RUN=1)"
	MsgFlagTemplate     = "Custom workflow template file (env PIPEGEN_TEMPLATE)"
	MsgFlagDisplayName  = "Display name used for the deploy step"
	MsgFlagDefaults     = "Print the annotated default config file instead"
	MsgFlagDebounce     = "Quiet period before regenerating after a change"

	// Version output
	MsgVersionFormat = "pipegen version %s\n  commit: %s\n  built:  %s\n"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/generate-long.txt
	msgGenerateLongRaw string
	MsgGenerateLong    = strings.TrimSpace(msgGenerateLongRaw)

	//go:embed msgs/generate-example.txt
	msgGenerateExampleRaw string
	MsgGenerateExample    = strings.TrimRight(msgGenerateExampleRaw, "\n")

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong    = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/template-long.txt
	msgTemplateLongRaw string
	MsgTemplateLong    = strings.TrimSpace(msgTemplateLongRaw)

	//go:embed msgs/guide.md
	MsgGuide string
)

// MsgUsageTemplate is cobra's usage template with bold section headings
const MsgUsageTemplate = `{{boldUpper "Usage"}}:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "Aliases"}}:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "Examples"}}:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

{{boldUpper "Commands"}}:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags"}}:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global Flags"}}:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
