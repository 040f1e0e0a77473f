package list

import (
	"github.com/arthur-debert/pipegen/pkg/config"
	"github.com/arthur-debert/pipegen/pkg/discovery"
	"github.com/arthur-debert/pipegen/pkg/filesystem"
	"github.com/arthur-debert/pipegen/pkg/logging"
	"github.com/arthur-debert/pipegen/pkg/types"
	"github.com/arthur-debert/pipegen/pkg/writer"
)

// ListServicesOptions defines the options for the ListServices command.
type ListServicesOptions struct {
	Config     *config.Config
	FileSystem types.FS
}

// ListServices reports every discovered service and whether its workflow exists.
// Unlike generate it never creates the workflows directory.
func ListServices(opts ListServicesOptions) ([]types.ServiceStatus, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("command", "ListServices").Msg("Executing command")

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	if err := cfg.CheckServicesDir(fsys); err != nil {
		return nil, err
	}

	services, err := discovery.Discover(fsys, cfg.ServicesDir)
	if err != nil {
		return nil, err
	}

	statuses := make([]types.ServiceStatus, 0, len(services))
	for _, svc := range services {
		path := writer.OutputPath(cfg.WorkflowsDir, svc.Name)
		exists, err := writer.Exists(fsys, path)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, types.ServiceStatus{Service: svc, OutputPath: path, Exists: exists})
	}

	log.Info().Str("command", "ListServices").Int("serviceCount", len(statuses)).Msg("Command finished")
	return statuses, nil
}
