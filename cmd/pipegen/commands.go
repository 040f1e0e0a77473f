package pipegen

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arthur-debert/pipegen/internal/version"
	"github.com/arthur-debert/pipegen/pkg/commands/generate"
	"github.com/arthur-debert/pipegen/pkg/commands/list"
	"github.com/arthur-debert/pipegen/pkg/config"
	"github.com/arthur-debert/pipegen/pkg/filesystem"
	"github.com/arthur-debert/pipegen/pkg/logging"
	"github.com/arthur-debert/pipegen/pkg/output"
	"github.com/arthur-debert/pipegen/pkg/watch"
	"github.com/arthur-debert/pipegen/pkg/workflow"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// Flag names shared by the generation commands
const (
	flagServicesDir  = "services-dir"
	flagWorkflowsDir = "workflows-dir"
	flagOverwrite    = "overwrite"
	flagDryRun       = "dry-run"
	flagTemplate     = "template"
)

// flagKeys maps flags onto config keys; only flags the user set become overrides
var flagKeys = map[string]string{
	flagServicesDir:  config.KeyServicesDir,
	flagWorkflowsDir: config.KeyWorkflowsDir,
	flagOverwrite:    config.KeyOverwrite,
	flagDryRun:       config.KeyDryRun,
	flagTemplate:     config.KeyTemplate,
}

// rootOptions holds the global flag values
type rootOptions struct {
	verbosity  int
	noColor    bool
	configFile string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "pipegen",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgGenerateExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, MsgFlagNoColor)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)

	// Generation settings, mirrored by the environment variables
	rootCmd.PersistentFlags().String(flagServicesDir, "", MsgFlagServicesDir)
	rootCmd.PersistentFlags().String(flagWorkflowsDir, "", MsgFlagWorkflowsDir)
	rootCmd.PersistentFlags().Bool(flagOverwrite, false, MsgFlagOverwrite)
	rootCmd.PersistentFlags().Bool(flagDryRun, false, MsgFlagDryRun)
	rootCmd.PersistentFlags().String(flagTemplate, "", MsgFlagTemplate)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newTemplateCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newDocsCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// loadConfig resolves the configuration with the flags the user set on cmd
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	overrides := map[string]interface{}{}
	for name, key := range flagKeys {
		f := cmd.Flag(name)
		if f == nil || !f.Changed {
			continue
		}
		switch name {
		case flagOverwrite, flagDryRun:
			v, err := cmd.Flags().GetBool(name)
			if err != nil {
				return nil, err
			}
			overrides[key] = v
		default:
			overrides[key] = f.Value.String()
		}
	}

	return config.Load(config.LoadOptions{
		ConfigFile: opts.configFile,
		Overrides:  overrides,
	})
}

func newReporter(cmd *cobra.Command, opts *rootOptions) *output.Reporter {
	return output.NewReporter(cmd.OutOrStdout(), opts.noColor)
}

func runGenerate(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	_, err = generate.Generate(generate.GenerateOptions{
		Config:     cfg,
		FileSystem: filesystem.NewOS(),
		Reporter:   newReporter(cmd, opts),
	})
	return err
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   MsgGenerateShort,
		Long:    MsgGenerateLong,
		Example: MsgGenerateExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			statuses, err := list.ListServices(list.ListServicesOptions{
				Config:     cfg,
				FileSystem: filesystem.NewOS(),
			})
			if err != nil {
				return err
			}

			newReporter(cmd, opts).Services(statuses, cfg.ServicesDir)
			return nil
		},
	}
}

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:     "watch",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			fsys := filesystem.NewOS()
			reporter := newReporter(cmd, opts)
			regenerate := func(ctx context.Context) error {
				_, err := generate.Generate(generate.GenerateOptions{
					Config:     cfg,
					FileSystem: fsys,
					Reporter:   reporter,
				})
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// The first run also validates the services directory
			if err := regenerate(ctx); err != nil {
				return err
			}

			w, err := watch.New(watch.Options{
				ServicesDir: cfg.ServicesDir,
				Debounce:    debounce,
				OnChange:    regenerate,
			})
			if err != nil {
				return err
			}
			return w.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, MsgFlagDebounce)
	return cmd
}

func newTemplateCmd(opts *rootOptions) *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:     "template [service]",
		Short:   MsgTemplateShort,
		Long:    MsgTemplateLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			tmpl, err := workflow.Load(filesystem.NewOS(), cfg.Template)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				_, err = fmt.Fprint(cmd.OutOrStdout(), tmpl.Source())
				return err
			}

			rendered, err := tmpl.RenderData(workflow.Data{Service: args[0], DisplayName: displayName})
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&displayName, "display-name", "", MsgFlagDisplayName)
	return cmd
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.GetDefaultsContent())
				return err
			}

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			if cfg.Source != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# loaded from %s\n", cfg.Source)
			}
			encoded, err := cfg.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(encoded)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newDocsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "docs",
		Short:   MsgDocsShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			color := output.ColorEnabled(cmd.OutOrStdout(), opts.noColor)
			_, err := fmt.Fprint(cmd.OutOrStdout(), output.RenderMarkdown(MsgGuide, color, 80))
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man <dir>",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(args[0], 0755); err != nil {
				return err
			}
			header := &doc.GenManHeader{
				Title:   "PIPEGEN",
				Section: "1",
			}
			return doc.GenManTree(cmd.Root(), header, args[0])
		},
	}
}
