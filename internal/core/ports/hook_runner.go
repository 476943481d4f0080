// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/rebuild/internal/core/domain"
)

// HookRunner runs a single lifecycle script of a package.
//
//go:generate go run go.uber.org/mock/mockgen -source=hook_runner.go -destination=mocks/mock_hook_runner.go -package=mocks
type HookRunner interface {
	// RunHook invokes hook in req.PkgRoot. A package that does not declare the
	// hook is not an error.
	RunHook(ctx context.Context, hook domain.Hook, req *domain.HookRequest) error
}

// ManifestReader reads package manifests.
type ManifestReader interface {
	// ReadManifest loads the package.json in dir. found is false when there is none.
	ReadManifest(dir string) (manifest *domain.Manifest, found bool, err error)
}
