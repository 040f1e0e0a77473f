// Package discovery finds the services a workflow should be generated for.
// A service is any immediate, non-hidden subdirectory of the services directory.
package discovery

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pipegen/pkg/errors"
	"github.com/arthur-debert/pipegen/pkg/logging"
	"github.com/arthur-debert/pipegen/pkg/types"
)

// Discover lists the services under servicesDir in filesystem listing order.
// An empty directory yields an empty, non-nil slice.
func Discover(fsys types.FS, servicesDir string) ([]types.Service, error) {
	logger := logging.GetLogger("discovery")

	entries, err := fsys.ReadDir(servicesDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDiscovery, "failed to list %s", servicesDir).
			WithDetail("path", servicesDir)
	}

	services := []types.Service{}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			logger.Trace().Str("name", name).Msg("Ignoring hidden entry")
			continue
		}

		dir := filepath.Join(servicesDir, name)
		if !isDir(fsys, entry.IsDir(), dir) {
			continue
		}

		services = append(services, types.Service{Name: name, Dir: dir})
	}

	logger.Debug().
		Str("servicesDir", servicesDir).
		Int("count", len(services)).
		Msg("Discovered services")
	return services, nil
}

// isDir also accepts symlinks that resolve to a directory
func isDir(fsys types.FS, entryIsDir bool, path string) bool {
	if entryIsDir {
		return true
	}
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}
