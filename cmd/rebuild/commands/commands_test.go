package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rebuild/cmd/rebuild/commands"
	"go.trai.ch/rebuild/internal/app"
	"go.trai.ch/rebuild/internal/build"
	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/rebuild/internal/core/ports/mocks"
	"go.trai.ch/rebuild/internal/engine/planner"
	"go.uber.org/mock/gomock"
)

type fakeApp struct {
	settings  domain.Settings
	rebuildFn func(ctx context.Context, opts app.RebuildOptions) (*domain.Report, error)
	plan      *planner.Plan
	lastOpts  app.RebuildOptions
}

func (f *fakeApp) LoadSettings(root string, override func(*domain.Settings)) (domain.Settings, error) {
	s := f.settings
	s.ProjectRoot = root
	if override != nil {
		override(&s)
	}
	return s, nil
}

func (f *fakeApp) Rebuild(ctx context.Context, opts app.RebuildOptions) (*domain.Report, error) {
	f.lastOpts = opts
	if f.rebuildFn != nil {
		return f.rebuildFn(ctx, opts)
	}
	return domain.NewReport(nil, domain.NewNodeSet()), nil
}

func (f *fakeApp) Plan(opts app.RebuildOptions) (*planner.Plan, error) {
	f.lastOpts = opts
	return f.plan, nil
}

func newCLI(t *testing.T, a commands.Application, args ...string) (*commands.CLI, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	cli := commands.New(a, log)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	return cli, buf
}

func TestRun_WiresFlags(t *testing.T) {
	fake := &fakeApp{settings: domain.DefaultSettings()}
	cli, _ := newCLI(t, fake,
		"run", "native", "left-pad@^1.0.0",
		"--dir", "/project",
		"--prod",
		"--no-optional",
		"-c", "2",
		"--unsafe-perm",
		"--closure", "dependencies",
	)

	require.NoError(t, cli.Execute(t.Context()))

	opts := fake.lastOpts
	assert.Equal(t, []string{"native", "left-pad@^1.0.0"}, opts.Selectors)
	assert.False(t, opts.Pending)
	assert.Equal(t, "/project", opts.Settings.ProjectRoot)
	assert.True(t, opts.Settings.Production)
	assert.False(t, opts.Settings.Development)
	assert.False(t, opts.Settings.Optional)
	assert.Equal(t, 2, opts.Settings.ChildConcurrency)
	assert.True(t, opts.Settings.UnsafePerm)
	assert.Equal(t, domain.ScopeDependencies, opts.Settings.Closure)
}

func TestRun_DefaultsKeepSettings(t *testing.T) {
	base := domain.DefaultSettings()
	base.ChildConcurrency = 9
	fake := &fakeApp{settings: base}
	cli, _ := newCLI(t, fake, "run", "--pending", "--dev")

	require.NoError(t, cli.Execute(t.Context()))

	opts := fake.lastOpts
	assert.Empty(t, opts.Selectors)
	assert.True(t, opts.Pending)
	assert.Equal(t, 9, opts.Settings.ChildConcurrency, "unset flags keep the file value")
	assert.False(t, opts.Settings.Production)
	assert.True(t, opts.Settings.Development)
}

func TestRun_InvalidClosure(t *testing.T) {
	fake := &fakeApp{settings: domain.DefaultSettings()}
	cli, _ := newCLI(t, fake, "run", "--closure", "everything")

	err := cli.Execute(t.Context())
	require.ErrorIs(t, err, domain.ErrInvalidClosureScope)
}

func TestRun_ReturnsRebuildError(t *testing.T) {
	fake := &fakeApp{
		settings: domain.DefaultSettings(),
		rebuildFn: func(context.Context, app.RebuildOptions) (*domain.Report, error) {
			return nil, errors.New("simulated error")
		},
	}
	cli, _ := newCLI(t, fake, "run")

	err := cli.Execute(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulated error")
}

func TestRun_UnknownTelemetryExporter(t *testing.T) {
	fake := &fakeApp{settings: domain.DefaultSettings()}
	cli, _ := newCLI(t, fake, "run", "--telemetry", "jaeger")

	err := cli.Execute(t.Context())
	require.ErrorIs(t, err, domain.ErrUnknownExporter)
}

func chainPlan() *planner.Plan {
	a := domain.NewInternedString("/a/1.0.0")
	b := domain.NewInternedString("/b/1.0.0")
	c := domain.NewInternedString("/c/1.0.0")
	return &planner.Plan{
		Chunks:  []domain.Chunk{{a}, {b}, {c}},
		Targets: domain.NewNodeSet(a, c),
	}
}

func TestPlan_PrintsChunks(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	fake := &fakeApp{settings: domain.DefaultSettings(), plan: chainPlan()}
	cli, buf := newCLI(t, fake, "plan", "a", "c")

	require.NoError(t, cli.Execute(t.Context()))

	g := goldie.New(t)
	g.Assert(t, "plan_chain", buf.Bytes())
}

func TestPlan_NoLockfilePrintsNothing(t *testing.T) {
	fake := &fakeApp{settings: domain.DefaultSettings()}
	cli, buf := newCLI(t, fake, "plan")

	require.NoError(t, cli.Execute(t.Context()))
	assert.Empty(t, buf.String())
}

func TestRenderPlan_Empty(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := new(bytes.Buffer)
	require.NoError(t, commands.RenderPlan(buf, &planner.Plan{Targets: domain.NewNodeSet()}))
	assert.Equal(t, "0 chunks, 0 packages to rebuild\n", buf.String())
}

func TestVersion(t *testing.T) {
	cli, buf := newCLI(t, &fakeApp{}, "version")

	require.NoError(t, cli.Execute(t.Context()))
	assert.Contains(t, buf.String(), build.Version)
}

func TestRootVersionFlag(t *testing.T) {
	cli, buf := newCLI(t, &fakeApp{}, "--version")

	require.NoError(t, cli.Execute(t.Context()))
	assert.Contains(t, buf.String(), build.Version)
}

func TestVerboseShorthandOnEveryCommand(t *testing.T) {
	for _, name := range []string{"run", "plan", "version"} {
		t.Run(name, func(t *testing.T) {
			cli, buf := newCLI(t, &fakeApp{}, name, "-v", "--help")

			require.NotPanics(t, func() {
				require.NoError(t, cli.Execute(t.Context()))
			})
			assert.Contains(t, buf.String(), "-v, --verbose")
		})
	}
}

func TestGlobalFlagsConfigureLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := &settableLogger{MockLogger: mocks.NewMockLogger(ctrl)}

	cli := commands.New(&fakeApp{}, log)
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"version", "--json", "-v"})

	require.NoError(t, cli.Execute(t.Context()))
	assert.True(t, log.json)
	assert.Equal(t, domain.LogLevelDebug, log.level)
}

type settableLogger struct {
	*mocks.MockLogger
	json  bool
	level domain.LogLevel
}

func (l *settableLogger) SetJSON(enable bool)            { l.json = enable }
func (l *settableLogger) SetLevel(level domain.LogLevel) { l.level = level }
