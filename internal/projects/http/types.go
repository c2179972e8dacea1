package http

import "github.com/tongcompany/intake-portal/internal/projects/domain"

// projectView decorates a project with the admin dashboard's urgency
// flag (stale, active, incomplete).
type projectView struct {
	*domain.Project
	Urgent bool `json:"urgent"`
}
