// Package app implements the application layer for rebuild.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/rebuild/internal/core/ports"
	"go.trai.ch/rebuild/internal/engine/planner"
	"go.trai.ch/rebuild/internal/engine/scheduler"
	"go.trai.ch/rebuild/internal/engine/selector"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	lockfiles ports.LockfileLoader
	resolver  ports.DepPathResolver
	modules   ports.ModulesStore
	manifests ports.ManifestReader
	runner    ports.HookRunner
	settings  ports.SettingsLoader
	planner   *planner.Planner
	scheduler *scheduler.Scheduler
	logger    ports.Logger
	tracer    ports.Tracer
}

// Deps lists the collaborators of an App.
type Deps struct {
	Lockfiles ports.LockfileLoader
	Resolver  ports.DepPathResolver
	Modules   ports.ModulesStore
	Manifests ports.ManifestReader
	Runner    ports.HookRunner
	Settings  ports.SettingsLoader
	Planner   *planner.Planner
	Scheduler *scheduler.Scheduler
	Logger    ports.Logger
	Tracer    ports.Tracer
}

// New creates a new App instance.
func New(deps Deps) *App {
	return &App{
		lockfiles: deps.Lockfiles,
		resolver:  deps.Resolver,
		modules:   deps.Modules,
		manifests: deps.Manifests,
		runner:    deps.Runner,
		settings:  deps.Settings,
		planner:   deps.Planner,
		scheduler: deps.Scheduler,
		logger:    deps.Logger,
		tracer:    deps.Tracer,
	}
}

// RebuildOptions configures one invocation.
type RebuildOptions struct {
	// Selectors restrict the rebuild to matching packages. Without selectors
	// every package is rebuilt.
	Selectors []string
	// Pending limits a rebuild without selectors to the pending builds.
	Pending  bool
	Settings domain.Settings
}

// all reports whether the invocation covers the whole project.
func (o *RebuildOptions) all() bool {
	return len(o.Selectors) == 0
}

// LoadSettings reads the settings file of root over the defaults, lets
// override apply command line values and validates the result.
func (a *App) LoadSettings(root string, override func(*domain.Settings)) (domain.Settings, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrFailedToGetRoot.Error()), "root", root)
	}

	settings, err := a.settings.Load(abs, domain.DefaultSettings())
	if err != nil {
		return domain.Settings{}, err
	}
	if override != nil {
		override(&settings)
	}
	if err := a.settings.Validate(&settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// Rebuild runs the lifecycle hooks of the selected packages in dependency
// order. The returned report is non-nil whenever execution started.
func (a *App) Rebuild(ctx context.Context, opts RebuildOptions) (*domain.Report, error) {
	runID := uuid.NewString()
	ctx, span := a.tracer.Start(ctx, "rebuild", ports.WithAttribute("run_id", runID))
	defer span.End()

	inv, err := a.prepare(opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if inv == nil {
		return domain.NewReport(nil, domain.NewNodeSet()), nil
	}

	a.logger.Debug(fmt.Sprintf("run %s: %d packages selected", runID, len(inv.plan.Targets)))

	report, err := a.scheduler.Rebuild(ctx, inv.plan, inv.job)
	if err != nil {
		if report != nil {
			if cancelled := report.Cancelled(); len(cancelled) > 0 {
				a.logger.Warn(fmt.Sprintf("%d packages were not rebuilt after the failure: %s",
					len(cancelled), strings.Join(domain.Strings(cancelled), ", ")))
			}
		}
		span.RecordError(err)
		return report, err
	}

	if opts.all() {
		if !opts.Pending || inv.state.HasPendingProject() {
			if err := a.rebuildProject(ctx, &opts.Settings, inv.job.RootModulesDir); err != nil {
				span.RecordError(err)
				return report, err
			}
		}
		if err := a.clearPending(inv); err != nil {
			span.RecordError(err)
			return report, err
		}
	}

	if skipped := report.Count(domain.OutcomeSkippedOptional); skipped > 0 {
		a.logger.Info(fmt.Sprintf("rebuilt %d packages, skipped %d optional",
			report.Count(domain.OutcomeSucceeded), skipped))
	} else {
		a.logger.Info(fmt.Sprintf("rebuilt %d packages", report.Count(domain.OutcomeSucceeded)))
	}
	return report, nil
}

// Plan computes the chunk sequence of an invocation without running it.
// It returns nil when the project has no lockfile.
func (a *App) Plan(opts RebuildOptions) (*planner.Plan, error) {
	inv, err := a.prepare(opts)
	if err != nil || inv == nil {
		return nil, err
	}
	return inv.plan, nil
}

// invocation is the resolved input of one rebuild.
type invocation struct {
	plan  *planner.Plan
	job   *scheduler.Job
	state *domain.ModulesState
}

func (a *App) prepare(opts RebuildOptions) (*invocation, error) {
	selectors, err := selector.ParseAll(opts.Selectors)
	if err != nil {
		return nil, err
	}

	settings := opts.Settings
	root := settings.ProjectRoot
	lf, found, err := a.lockfiles.Load(root, settings.Lockfile)
	if err != nil {
		return nil, err
	}
	if !found {
		a.logger.Info("no lockfile found in " + root + ", nothing to rebuild")
		return nil, nil
	}

	rootModules := filepath.Join(root, domain.ModulesDirName)
	modulesDir := settings.ModulesDir
	if modulesDir == "" {
		modulesDir = rootModules
	}

	inv := &invocation{
		job: &scheduler.Job{
			Lockfile:       lf,
			Resolver:       a.resolver,
			ModulesDir:     modulesDir,
			RootModulesDir: rootModules,
			Settings:       settings,
		},
	}

	var targets domain.NodeSet
	switch {
	case !opts.all():
		targets = selector.FindMatchingNodes(lf, a.resolver, selectors, a.logger)
	case opts.Pending:
		state, _, err := a.modules.Read(rootModules)
		if err != nil {
			return nil, err
		}
		inv.state = state
		if len(state.Pending()) == 0 {
			a.logger.Info("no pending builds, nothing to rebuild")
			return nil, nil
		}
		targets = domain.NewNodeSet()
		for _, id := range state.Pending() {
			if id.String() != domain.ProjectRootID {
				targets.Add(id)
			}
		}
	default:
		state, _, err := a.modules.Read(rootModules)
		if err != nil {
			return nil, err
		}
		inv.state = state
		targets = domain.NewNodeSet(lf.PackageIDs()...)
	}

	inv.plan, err = a.planner.Plan(lf, targets, planner.Options{
		Policy:  settings.DependencyPolicy(),
		Closure: settings.Closure,
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// rebuildProject runs the scripts the project's own manifest declares.
func (a *App) rebuildProject(ctx context.Context, settings *domain.Settings, rootModules string) error {
	root := settings.ProjectRoot
	manifest, found, err := a.manifests.ReadManifest(root)
	if err != nil {
		return err
	}
	if !found || len(manifest.Scripts) == 0 {
		return nil
	}

	req := &domain.HookRequest{
		DepPath:        domain.ProjectRootID,
		Package:        domain.NamedPackage(manifest.Name, manifest.Version),
		PkgRoot:        root,
		RootModulesDir: rootModules,
		UnsafePerm:     settings.UnsafePerm,
		RawConfig:      settings.RawConfig,
		Env:            settings.Env,
	}
	for _, hook := range domain.ProjectHooks {
		if !manifest.HasScript(hook) {
			continue
		}
		if err := a.runner.RunHook(ctx, hook, req); err != nil {
			return domain.ErrorWith(fmt.Errorf("%w: %w", domain.ErrProjectScriptFailed, err), "hook", string(hook))
		}
	}
	return nil
}

// clearPending persists the installation state with no pending builds.
func (a *App) clearPending(inv *invocation) error {
	state := domain.ModulesState{}
	if inv.state != nil {
		state = *inv.state
	}
	cleared := state.ClearPending()
	return a.modules.Write(inv.job.RootModulesDir, &cleared)
}
