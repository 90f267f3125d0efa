package cancellation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate_RefundWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		eventDate    time.Time
		wantEligible bool
	}{
		{"well before window", now.Add(30 * 24 * time.Hour), true},
		{"one minute past window", now.Add(72*time.Hour + time.Minute), true},
		{"exactly 72 hours", now.Add(72 * time.Hour), false},
		{"one minute inside window", now.Add(72*time.Hour - time.Minute), false},
		{"day of event", now.Add(2 * time.Hour), false},
		{"event already passed", now.Add(-24 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Evaluate(tt.eventDate, now)
			assert.Equal(t, tt.wantEligible, decision.RefundEligible)
			if tt.wantEligible {
				assert.Equal(t, "customer cancelled within refund window", decision.Reason)
			} else {
				assert.Equal(t, "customer cancelled outside refund window", decision.Reason)
			}
		})
	}
}

func TestEvaluate_IsPure(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	eventDate := now.Add(100 * time.Hour)

	first := Evaluate(eventDate, now)
	second := Evaluate(eventDate, now)
	assert.Equal(t, first, second)
}
