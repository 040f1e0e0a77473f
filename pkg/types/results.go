package types

// Service is a deployable unit, identified by its directory name.
type Service struct {
	Name string
	Dir  string
}

// Action is what the writer decided to do with one service's output file.
type Action string

const (
	ActionSkipped   Action = "skipped"
	ActionPreviewed Action = "previewed"
	ActionWritten   Action = "written"
)

// Counts reports whether the action produced (or would produce) a file.
func (a Action) Counts() bool {
	return a == ActionPreviewed || a == ActionWritten
}

// Outcome is the result of processing a single service.
type Outcome struct {
	Service string
	Path    string
	Action  Action
	// Content is the rendered document. Empty for skipped services.
	Content string
}

// GenerateResult holds the result of a full generation run.
type GenerateResult struct {
	Services []Service
	Outcomes []Outcome
	DryRun   bool
}

// Generated returns the number of files written or previewed.
func (r *GenerateResult) Generated() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Action.Counts() {
			n++
		}
	}
	return n
}

// ServiceStatus describes a discovered service and its output file, as shown by `list`.
type ServiceStatus struct {
	Service    Service
	OutputPath string
	Exists     bool
}
