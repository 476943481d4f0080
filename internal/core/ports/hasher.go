package ports

import "go.trai.ch/rebuild/internal/core/domain"

// Hasher fingerprints the build inputs of a package.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint hashes the hook set, the hook environment and the build
	// files found in req.PkgRoot.
	Fingerprint(req *domain.HookRequest, hooks []domain.Hook) (string, error)
}
