package domain

import "time"

// IsStale reports whether the project should be flagged for a
// reminder: still active, not fully collected, and untouched for at
// least staleDays.
func (p *Project) IsStale(now time.Time, staleDays int) bool {
	if p.Status != StatusActive || p.CompletionRate >= 100 {
		return false
	}
	return now.Sub(p.UpdatedAt) >= time.Duration(staleDays)*24*time.Hour
}
