package output

// User-facing notices, one line per decision
const (
	MsgSkipped      = "Skipping %s: file already exists (set OVERWRITE=1 to regenerate)"
	MsgWritten      = "Generated %s"
	MsgPreviewed    = "[dry run] Would generate %s"
	MsgPreviewBegin = "----- BEGIN %s -----"
	MsgPreviewEnd   = "----- END %s -----"

	MsgNoServices       = "No services found in %s; no workflow files generated."
	MsgNothingGenerated = "No workflow files generated."
	MsgGeneratedCount   = "Generated %d workflow file(s)."
	MsgPreviewedCount   = "[dry run] Would generate %d workflow file(s)."

	MsgServiceExists  = "exists"
	MsgServiceMissing = "missing"
	MsgErrorFormat    = "Error: %v"
)
