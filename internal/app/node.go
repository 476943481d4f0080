package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rebuild/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/rebuild/internal/adapters/lifecycle"          //nolint:depguard // Wired in app layer
	"go.trai.ch/rebuild/internal/adapters/lockfile"           //nolint:depguard // Wired in app layer
	"go.trai.ch/rebuild/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/rebuild/internal/adapters/modules"            //nolint:depguard // Wired in app layer
	"go.trai.ch/rebuild/internal/adapters/telemetry"          //nolint:depguard // Wired in app layer
	"go.trai.ch/rebuild/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/rebuild/internal/core/ports"
	"go.trai.ch/rebuild/internal/engine/planner"
	"go.trai.ch/rebuild/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds what the command line needs from the graph.
type Components struct {
	App      *App
	Logger   ports.Logger
	Progress ports.Progress
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			lockfile.NodeID,
			lockfile.DepPathNodeID,
			modules.NodeID,
			lifecycle.ManifestNodeID,
			lifecycle.NodeID,
			config.NodeID,
			planner.NodeID,
			scheduler.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			progress, err := graft.Dep[ports.Progress](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log, Progress: progress}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	lockfiles, err := graft.Dep[ports.LockfileLoader](ctx)
	if err != nil {
		return nil, err
	}
	resolver, err := graft.Dep[ports.DepPathResolver](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.ModulesStore](ctx)
	if err != nil {
		return nil, err
	}
	manifests, err := graft.Dep[ports.ManifestReader](ctx)
	if err != nil {
		return nil, err
	}
	runner, err := graft.Dep[ports.HookRunner](ctx)
	if err != nil {
		return nil, err
	}
	settings, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}
	plan, err := graft.Dep[*planner.Planner](ctx)
	if err != nil {
		return nil, err
	}
	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(Deps{
		Lockfiles: lockfiles,
		Resolver:  resolver,
		Modules:   store,
		Manifests: manifests,
		Runner:    runner,
		Settings:  settings,
		Planner:   plan,
		Scheduler: sched,
		Logger:    log,
		Tracer:    tracer,
	}), nil
}
