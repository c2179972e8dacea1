package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tongcompany/intake-portal/internal/projects/domain"
)

// ProjectRepository is the process-wide project store. It is a plain
// keyed mapping guarded by one lock: every request handler shares the
// same instance and step submission is a read-modify-write, so the
// whole store serializes through the mutex. State lives only for the
// process lifetime.
type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]*domain.Project
}

// NewProjectRepository creates an empty project store.
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{projects: make(map[string]*domain.Project)}
}

// Create registers a new project with a fresh ID, zeroed progress and
// active status.
func (r *ProjectRepository) Create(req domain.CreateProjectRequest) *domain.Project {
	now := time.Now()
	p := &domain.Project{
		ID:          uuid.New().String(),
		CompanyName: req.CompanyName,
		ManagerName: req.ManagerName,
		Email:       req.Email,
		Phone:       req.Phone,
		CreatedAt:   now,
		UpdatedAt:   now,
		Status:      domain.StatusActive,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[p.ID] = p

	return clone(p)
}

// Put stores the given project as-is, overwriting any existing record
// with the same ID. Timestamps are taken from the record.
func (r *ProjectRepository) Put(p *domain.Project) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[p.ID] = clone(p)
}

// Get returns a copy of the project, or domain.ErrNotFound.
func (r *ProjectRepository) Get(id string) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(p), nil
}

// Exists reports whether the project is stored.
func (r *ProjectRepository) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.projects[id]
	return ok
}

// List returns copies of every stored project. Order is unspecified;
// callers sort for display.
func (r *ProjectRepository) List() []*domain.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, clone(p))
	}
	return out
}

// Update applies a shallow field merge and refreshes the update
// timestamp.
func (r *ProjectRepository) Update(id string, req domain.UpdateProjectRequest) (*domain.Project, error) {
	return r.Apply(id, func(p *domain.Project) {
		if req.CompanyName != nil {
			p.CompanyName = *req.CompanyName
		}
		if req.ManagerName != nil {
			p.ManagerName = *req.ManagerName
		}
		if req.Email != nil {
			p.Email = *req.Email
		}
		if req.Phone != nil {
			p.Phone = *req.Phone
		}
		if req.Status != nil {
			p.Status = *req.Status
		}
	})
}

// Apply runs mutate on the stored project inside the store lock, so a
// fetch-merge-recompute sequence cannot interleave with another
// writer. The update timestamp is always refreshed. Returns a copy of
// the mutated project.
func (r *ProjectRepository) Apply(id string, mutate func(p *domain.Project)) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	mutate(p)
	p.UpdatedAt = time.Now()

	return clone(p), nil
}

// Delete removes a project. Reports whether it was present.
func (r *ProjectRepository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return false
	}
	delete(r.projects, id)
	return true
}

// clone returns a copy safe to hand to callers. Step payloads 1-6 are
// replaced wholesale on submission and never mutated in place, so
// sharing those pointers is fine. Step 7 grows as files are uploaded,
// so its list is copied out.
func clone(p *domain.Project) *domain.Project {
	cp := *p
	if p.Step7Data != nil {
		cats := make([]domain.FileCategory, len(p.Step7Data.UploadedFiles))
		for i, cat := range p.Step7Data.UploadedFiles {
			files := make([]domain.FileInfo, len(cat.Files))
			copy(files, cat.Files)
			cats[i] = domain.FileCategory{Category: cat.Category, Files: files}
		}
		cp.Step7Data = &domain.Step7Data{UploadedFiles: cats}
	}
	return &cp
}
