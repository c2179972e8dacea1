package domain

import (
	"math"
	"time"
)

// TotalSteps is the number of stages in the intake wizard.
const TotalSteps = 7

// Project status constants
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusPaused    = "paused"
)

// Project is the central intake record. The completion rate is always
// derived from the progress flags; SubmitStep keeps status in sync
// when the rate reaches 100.
type Project struct {
	ID             string    `json:"id"`
	CompanyName    string    `json:"companyName"`
	ManagerName    string    `json:"managerName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Status         string    `json:"status"`
	Progress       Progress  `json:"progress"`
	CompletionRate int       `json:"completionRate"`

	Step1Data *Step1Data `json:"step1Data,omitempty"`
	Step2Data *Step2Data `json:"step2Data,omitempty"`
	Step3Data *Step3Data `json:"step3Data,omitempty"`
	Step4Data *Step4Data `json:"step4Data,omitempty"`
	Step5Data *Step5Data `json:"step5Data,omitempty"`
	Step6Data *Step6Data `json:"step6Data,omitempty"`
	Step7Data *Step7Data `json:"step7Data,omitempty"`
}

// Progress holds one completion flag per wizard step.
type Progress struct {
	Step1 bool `json:"step1"`
	Step2 bool `json:"step2"`
	Step3 bool `json:"step3"`
	Step4 bool `json:"step4"`
	Step5 bool `json:"step5"`
	Step6 bool `json:"step6"`
	Step7 bool `json:"step7"`
}

func (p Progress) flags() [TotalSteps]bool {
	return [TotalSteps]bool{p.Step1, p.Step2, p.Step3, p.Step4, p.Step5, p.Step6, p.Step7}
}

// Done reports whether the given step (1-based) is completed.
// Out-of-range steps report false.
func (p Progress) Done(step int) bool {
	if step < 1 || step > TotalSteps {
		return false
	}
	return p.flags()[step-1]
}

// MarkDone sets the flag for the given step (1-based). Out-of-range
// steps are ignored.
func (p *Progress) MarkDone(step int) {
	switch step {
	case 1:
		p.Step1 = true
	case 2:
		p.Step2 = true
	case 3:
		p.Step3 = true
	case 4:
		p.Step4 = true
	case 5:
		p.Step5 = true
	case 6:
		p.Step6 = true
	case 7:
		p.Step7 = true
	}
}

// CompletedCount returns how many steps are done.
func (p Progress) CompletedCount() int {
	n := 0
	for _, done := range p.flags() {
		if done {
			n++
		}
	}
	return n
}

// CompletionRate derives the integer percentage from the flags:
// round(100 * completed / 7).
func (p Progress) CompletionRate() int {
	return int(math.Round(float64(p.CompletedCount()) / TotalSteps * 100))
}

// NextIncompleteStep returns the lowest-numbered step whose flag is
// false. The second return value is false when every step is done.
func (p Progress) NextIncompleteStep() (int, bool) {
	for i, done := range p.flags() {
		if !done {
			return i + 1, true
		}
	}
	return 0, false
}

// SetStepData replaces the payload for a step wholesale. The payload's
// concrete type determines the slot.
func (pr *Project) SetStepData(payload StepPayload) {
	switch data := payload.(type) {
	case *Step1Data:
		pr.Step1Data = data
	case *Step2Data:
		pr.Step2Data = data
	case *Step3Data:
		pr.Step3Data = data
	case *Step4Data:
		pr.Step4Data = data
	case *Step5Data:
		pr.Step5Data = data
	case *Step6Data:
		pr.Step6Data = data
	case *Step7Data:
		pr.Step7Data = data
	}
}

// CreateProjectRequest carries the intake form fields.
type CreateProjectRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
	ManagerName string `json:"managerName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
}

// UpdateProjectRequest is a shallow merge: only non-nil fields are
// applied.
type UpdateProjectRequest struct {
	CompanyName *string `json:"companyName,omitempty"`
	ManagerName *string `json:"managerName,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Status      *string `json:"status,omitempty"`
}
