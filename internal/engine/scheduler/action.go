package scheduler

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/rebuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Job holds what every action of one invocation shares.
type Job struct {
	Lockfile *domain.Lockfile
	Resolver ports.DepPathResolver
	// ModulesDir is where the packages of the lockfile are installed.
	ModulesDir string
	// RootModulesDir is the project's top-level node_modules directory.
	RootModulesDir string
	Settings       domain.Settings
}

// Action rebuilds one installed package by running its lifecycle hooks.
type Action struct {
	job      *Job
	runner   ports.HookRunner
	records  ports.BuildRecordStore
	hasher   ports.Hasher
	logger   ports.Logger
	progress ports.Progress
	tracer   ports.Tracer
}

// NewAction creates an Action for job.
func NewAction(
	job *Job,
	runner ports.HookRunner,
	records ports.BuildRecordStore,
	hasher ports.Hasher,
	logger ports.Logger,
	progress ports.Progress,
	tracer ports.Tracer,
) *Action {
	return &Action{
		job:      job,
		runner:   runner,
		records:  records,
		hasher:   hasher,
		logger:   logger,
		progress: progress,
		tracer:   tracer,
	}
}

// Run executes the hooks of id and classifies the result. A failure of an
// optional package is reported as skipped, any other failure as fatal.
func (a *Action) Run(ctx context.Context, id domain.InternedString) domain.ExecutionOutcome {
	snap, _ := a.job.Lockfile.Snapshot(id)
	pkg := a.job.Resolver.NameVersion(id, snap)

	outcome := domain.ExecutionOutcome{Node: id, Package: pkg}

	ctx, span := a.tracer.Start(ctx, id.String(), ports.WithAttribute("package", pkg.String()))
	defer span.End()

	ctx, vertex := a.progress.Record(ctx, pkg.String())

	hooks := domain.DependencyHooks(snap)
	var (
		req *domain.HookRequest
		err error
	)
	if !pkg.OK {
		err = zerr.New("cannot get the package name from the lockfile")
	} else {
		req = a.request(id, pkg, vertex, span)
		err = a.runHooks(ctx, hooks, req)
	}

	switch {
	case err == nil:
		outcome.Status = domain.OutcomeSucceeded
		a.logger.Debug(fmt.Sprintf("rebuilt %s", pkg))
	case snap.Optional:
		outcome.Status = domain.OutcomeSkippedOptional
		outcome.Err = err
		msg := fmt.Sprintf("skipping optional dependency %s (%s): reason=build_failure: %v", pkg, snapshotID(id, snap), err)
		a.logger.Warn(msg)
		vertex.Log(domain.LogLevelWarn, msg)
	default:
		outcome.Status = domain.OutcomeFailed
		outcome.Err = &domain.RebuildError{
			Node:    id,
			Name:    pkg.Name,
			Version: pkg.Version,
			Err:     err,
		}
		span.RecordError(err)
	}

	if outcome.Status == domain.OutcomeFailed {
		vertex.Complete(outcome.Err)
	} else {
		vertex.Complete(nil)
	}

	a.record(id, pkg, hooks, req, outcome)
	return outcome
}

func (a *Action) request(id domain.InternedString, pkg domain.PackageName, vertex ports.Vertex, span ports.Span) *domain.HookRequest {
	settings := a.job.Settings
	return &domain.HookRequest{
		DepPath:        id.String(),
		Package:        pkg,
		PkgRoot:        a.job.Resolver.InstallDir(a.job.ModulesDir, a.job.Lockfile.Registry, id, pkg.Name),
		RootModulesDir: a.job.RootModulesDir,
		UnsafePerm:     settings.UnsafePerm,
		RawConfig:      settings.RawConfig,
		Env:            settings.Env,
		Stdout:         io.MultiWriter(vertex.Stdout(), span),
		Stderr:         io.MultiWriter(vertex.Stderr(), span),
	}
}

func (a *Action) runHooks(ctx context.Context, hooks []domain.Hook, req *domain.HookRequest) error {
	for _, hook := range hooks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.runner.RunHook(ctx, hook, req); err != nil {
			return err
		}
	}
	return nil
}

// record persists the outcome. A failing store never changes the outcome.
func (a *Action) record(
	id domain.InternedString,
	pkg domain.PackageName,
	hooks []domain.Hook,
	req *domain.HookRequest,
	outcome domain.ExecutionOutcome,
) {
	rec := domain.BuildRecord{
		Node:      id.String(),
		Package:   pkg.String(),
		Status:    outcome.Status,
		Hooks:     hooks,
		Timestamp: time.Now(),
	}
	if outcome.Err != nil {
		rec.Error = outcome.Err.Error()
	}
	if req != nil {
		fingerprint, err := a.hasher.Fingerprint(req, hooks)
		if err != nil {
			a.logger.Warn(fmt.Sprintf("cannot fingerprint %s: %v", id, err))
		}
		rec.Fingerprint = fingerprint
	}
	if err := a.records.Put(a.job.ModulesDir, rec); err != nil {
		a.logger.Warn(fmt.Sprintf("cannot store the build record of %s: %v", id, err))
	}
}

func snapshotID(id domain.InternedString, snap domain.PackageSnapshot) string {
	if snap.ID != "" {
		return snap.ID
	}
	return id.String()
}
