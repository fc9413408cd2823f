package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_Transitions(t *testing.T) {
	tests := []struct {
		name   string
		events []string
		want   Status
	}{
		{name: "initial", events: nil, want: StatusPending},
		{name: "skip", events: []string{EventSkip}, want: StatusSkipped},
		{name: "start", events: []string{EventStart}, want: StatusRunning},
		{name: "succeed", events: []string{EventStart, EventSucceed}, want: StatusDone},
		{name: "fail", events: []string{EventStart, EventFail}, want: StatusFailed},
		{name: "succeed requires running", events: []string{EventSucceed}, want: StatusPending},
		{name: "skipped cannot start", events: []string{EventSkip, EventStart}, want: StatusSkipped},
		{name: "done ignores fail", events: []string{EventStart, EventSucceed, EventFail}, want: StatusDone},
		{name: "failed ignores start", events: []string{EventStart, EventFail, EventStart}, want: StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc, err := newLifecycle(10)
			require.NoError(t, err)
			defer lc.stop()

			for _, e := range tt.events {
				lc.send(e)
			}

			assert.Equal(t, tt.want, lc.Status())
		})
	}
}
