package output

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/arthur-debert/pipegen/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestOutcomeNotices(t *testing.T) {
	tests := []struct {
		name    string
		outcome types.Outcome
		want    string
	}{
		{
			name:    "skipped",
			outcome: types.Outcome{Service: "alpha", Path: "wf/alpha-ci-cd.yml", Action: types.ActionSkipped},
			want:    "Skipping wf/alpha-ci-cd.yml: file already exists (set OVERWRITE=1 to regenerate)\n",
		},
		{
			name:    "written",
			outcome: types.Outcome{Service: "alpha", Path: "wf/alpha-ci-cd.yml", Action: types.ActionWritten, Content: "x\n"},
			want:    "Generated wf/alpha-ci-cd.yml\n",
		},
		{
			name:    "previewed",
			outcome: types.Outcome{Service: "beta", Path: "wf/beta-ci-cd.yml", Action: types.ActionPreviewed, Content: "name: CI/CD for beta\n"},
			want: "[dry run] Would generate wf/beta-ci-cd.yml\n" +
				"----- BEGIN wf/beta-ci-cd.yml -----\n" +
				"name: CI/CD for beta\n" +
				"----- END wf/beta-ci-cd.yml -----\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewReporter(&buf, true).Outcome(tt.outcome)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestSummary(t *testing.T) {
	services := []types.Service{{Name: "alpha"}}

	tests := []struct {
		name   string
		result *types.GenerateResult
		want   string
	}{
		{
			name:   "no services",
			result: &types.GenerateResult{},
			want:   "No services found in services; no workflow files generated.\n",
		},
		{
			name: "all skipped",
			result: &types.GenerateResult{
				Services: services,
				Outcomes: []types.Outcome{{Action: types.ActionSkipped}},
			},
			want: "No workflow files generated.\n",
		},
		{
			name: "written",
			result: &types.GenerateResult{
				Services: services,
				Outcomes: []types.Outcome{{Action: types.ActionWritten}},
			},
			want: "Generated 1 workflow file(s).\n",
		},
		{
			name: "dry run",
			result: &types.GenerateResult{
				Services: services,
				Outcomes: []types.Outcome{{Action: types.ActionPreviewed}},
				DryRun:   true,
			},
			want: "[dry run] Would generate 1 workflow file(s).\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewReporter(&buf, true).Summary(tt.result, "services")
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestServices(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, true).Services([]types.ServiceStatus{
		{Service: types.Service{Name: "alpha"}, OutputPath: "wf/alpha-ci-cd.yml", Exists: true},
		{Service: types.Service{Name: "payments"}, OutputPath: "wf/payments-ci-cd.yml"},
	}, "services")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"alpha     wf/alpha-ci-cd.yml  exists",
		"payments  wf/payments-ci-cd.yml  missing",
	}, lines)
}

func TestServicesEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, true).Services(nil, "apps")
	assert.Equal(t, "No services found in apps; no workflow files generated.\n", buf.String())
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, true).Error(stderrors.New("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, ColorEnabled(&buf, false), "buffers are never terminals")
	assert.False(t, ColorEnabled(&buf, true))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(&buf, false))
}

func TestRenderMarkdownPlain(t *testing.T) {
	out := RenderMarkdown("# Title\n\nSome *text*.\n", false, 80)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "text")
}
