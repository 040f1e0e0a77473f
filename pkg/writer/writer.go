// Package writer decides, per service, whether a rendered workflow is
// skipped, previewed or written, and performs the write.
package writer

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pipegen/pkg/errors"
	"github.com/arthur-debert/pipegen/pkg/logging"
	"github.com/arthur-debert/pipegen/pkg/types"
	"github.com/arthur-debert/pipegen/pkg/workflow"
	"github.com/rs/zerolog"
)

const fileMode fs.FileMode = 0644

// Options controls the writer's decision table
type Options struct {
	WorkflowsDir string
	Overwrite    bool
	DryRun       bool
}

// Writer applies the skip / preview / write decision to rendered documents
type Writer struct {
	fs     types.FS
	opts   Options
	logger zerolog.Logger
}

// New creates a writer over fsys
func New(fsys types.FS, opts Options) *Writer {
	return &Writer{
		fs:     fsys,
		opts:   opts,
		logger: logging.GetLogger("writer"),
	}
}

// OutputPath returns where the workflow for service is written
func OutputPath(workflowsDir, service string) string {
	return filepath.Join(workflowsDir, workflow.FileName(service))
}

// Exists reports whether a file is already present at path
func Exists(fsys types.FS, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to check %s", path).
		WithDetail("path", path)
}

// Write handles one service. The checks run in order:
// existing file without overwrite is skipped, dry run is previewed,
// anything else is written (created or truncated).
func (w *Writer) Write(service, content string) (types.Outcome, error) {
	path := OutputPath(w.opts.WorkflowsDir, service)
	outcome := types.Outcome{Service: service, Path: path}

	exists, err := Exists(w.fs, path)
	if err != nil {
		return outcome, err
	}

	if exists && !w.opts.Overwrite {
		w.logger.Info().Str("path", path).Msg("Workflow already exists, skipping")
		outcome.Action = types.ActionSkipped
		return outcome, nil
	}

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	outcome.Content = content

	if w.opts.DryRun {
		w.logger.Info().Str("path", path).Msg("Dry run, not writing")
		outcome.Action = types.ActionPreviewed
		return outcome, nil
	}

	if err := w.fs.WriteFile(path, []byte(content), fileMode); err != nil {
		return outcome, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
			WithDetail("service", service).
			WithDetail("path", path)
	}

	w.logger.Info().Str("path", path).Bool("replaced", exists).Msg("Wrote workflow")
	outcome.Action = types.ActionWritten
	return outcome, nil
}
