// Package nas mirrors project files to network-attached storage. The
// mirror is never authoritative: every call is best-effort and the
// local copy stands regardless of mirror outcome.
package nas

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Mirror duplicates project files onto network storage.
type Mirror interface {
	// CreateProjectTree prepares the project folder and its step
	// subfolders.
	CreateProjectTree(ctx context.Context, projectFolder string, stepFolders []string) error
	// Write stores data under path (forward-slash separated, relative
	// to the share root).
	Write(ctx context.Context, path string, data []byte) error
	// Delete removes the object at path.
	Delete(ctx context.Context, path string) error
}

// NoopMirror is used when no NAS endpoint is configured.
type NoopMirror struct{}

func (NoopMirror) CreateProjectTree(_ context.Context, projectFolder string, _ []string) error {
	log.Debug().Str("folder", projectFolder).Msg("NAS not configured, skipping project tree")
	return nil
}

func (NoopMirror) Write(_ context.Context, path string, _ []byte) error {
	log.Debug().Str("path", path).Msg("NAS not configured, skipping mirror write")
	return nil
}

func (NoopMirror) Delete(_ context.Context, path string) error {
	log.Debug().Str("path", path).Msg("NAS not configured, skipping mirror delete")
	return nil
}

// withTimeout bounds a mirror call so a slow share cannot stall the
// request that triggered it.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 15 * time.Second
	}
	return context.WithTimeout(ctx, d)
}
