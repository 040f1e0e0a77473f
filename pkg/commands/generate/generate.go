package generate

import (
	"github.com/arthur-debert/pipegen/pkg/config"
	"github.com/arthur-debert/pipegen/pkg/discovery"
	"github.com/arthur-debert/pipegen/pkg/filesystem"
	"github.com/arthur-debert/pipegen/pkg/logging"
	"github.com/arthur-debert/pipegen/pkg/output"
	"github.com/arthur-debert/pipegen/pkg/types"
	"github.com/arthur-debert/pipegen/pkg/workflow"
	"github.com/arthur-debert/pipegen/pkg/writer"
)

// GenerateOptions holds options for a generation run
type GenerateOptions struct {
	Config *config.Config
	// FileSystem defaults to the OS filesystem
	FileSystem types.FS
	// Reporter receives one notice per service and the summary. Nil prints nothing.
	Reporter *output.Reporter
}

// Generate discovers services and renders one workflow per service.
// Services are processed sequentially in discovery order; the first error aborts the run.
func Generate(opts GenerateOptions) (*types.GenerateResult, error) {
	logger := logging.GetLogger("commands.generate")
	done := logging.LogOperationStart(logger, "generate")
	defer done()

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	// A broken template must fail before anything is created
	tmpl, err := workflow.Load(fsys, cfg.Template)
	if err != nil {
		return nil, err
	}

	if err := cfg.Prepare(fsys); err != nil {
		return nil, err
	}

	services, err := discovery.Discover(fsys, cfg.ServicesDir)
	if err != nil {
		return nil, err
	}

	result := &types.GenerateResult{
		Services: services,
		Outcomes: make([]types.Outcome, 0, len(services)),
		DryRun:   cfg.DryRun,
	}

	w := writer.New(fsys, writer.Options{
		WorkflowsDir: cfg.WorkflowsDir,
		Overwrite:    cfg.Overwrite,
		DryRun:       cfg.DryRun,
	})

	for _, svc := range services {
		content, err := tmpl.Render(svc.Name)
		if err != nil {
			return result, err
		}

		outcome, err := w.Write(svc.Name, content)
		if err != nil {
			return result, err
		}

		result.Outcomes = append(result.Outcomes, outcome)
		if opts.Reporter != nil {
			opts.Reporter.Outcome(outcome)
		}
	}

	if opts.Reporter != nil {
		opts.Reporter.Summary(result, cfg.ServicesDir)
	}

	logger.Info().
		Int("services", len(services)).
		Int("generated", result.Generated()).
		Bool("dryRun", cfg.DryRun).
		Msg("Generation finished")
	return result, nil
}
