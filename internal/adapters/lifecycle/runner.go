// Package lifecycle runs package lifecycle scripts through the system shell.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/rebuild/internal/core/ports"
)

// Runner implements ports.HookRunner and ports.ManifestReader.
type Runner struct {
	logger ports.Logger
	shell  string
}

// NewRunner creates a new Runner that invokes scripts with sh -c.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
		shell:  "sh",
	}
}

// RunHook runs the script the manifest in req.PkgRoot declares for hook.
// An install hook falls back to node-gyp when the package ships a
// binding.gyp and declares no install script.
func (r *Runner) RunHook(ctx context.Context, hook domain.Hook, req *domain.HookRequest) error {
	manifest, found, err := r.ReadManifest(req.PkgRoot)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrorWith(domain.ErrManifestReadFailed, "path", filepath.Join(req.PkgRoot, domain.ManifestFileName))
	}

	script := Script(manifest, hook, req.PkgRoot)
	if script == "" {
		return nil
	}

	env := resolveEnvironment(os.Environ(), hookEnvironment(hook, script, manifest, req), req.Env)

	shell := r.shell
	if !filepath.IsAbs(shell) {
		if lp, err := lookPath(shell, env); err == nil {
			shell = lp
		}
	}

	cmd := exec.CommandContext(ctx, shell, "-c", script) //nolint:gosec // scripts come from installed manifests
	if len(cmd.Args) > 0 {
		cmd.Args[0] = r.shell
	}
	cmd.Dir = req.PkgRoot
	cmd.Env = env

	stdout, stderr := r.writers(req)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	runErr := cmd.Run()
	flush(stdout, stderr)

	if runErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return domain.ErrorWith(
			fmt.Errorf("%w: %s %s: %w", domain.ErrHookFailed, req.Package, hook, runErr),
			"hook", string(hook),
			"package", req.Package.String(),
			"exit_code", exitCode,
		)
	}
	return nil
}

// writers prefers the request's writers and falls back to the logger.
func (r *Runner) writers(req *domain.HookRequest) (io.Writer, io.Writer) {
	prefix := req.DepPath + ": "
	if req.Package.OK {
		prefix = req.Package.String() + ": "
	}

	var stdout, stderr io.Writer = req.Stdout, req.Stderr
	if stdout == nil {
		stdout = &logWriter{logger: r.logger, level: domain.LogLevelInfo, prefix: prefix}
	}
	if stderr == nil {
		stderr = &logWriter{logger: r.logger, level: domain.LogLevelWarn, prefix: prefix}
	}
	return stdout, stderr
}

func flush(writers ...io.Writer) {
	for _, w := range writers {
		if lw, ok := w.(*logWriter); ok {
			lw.Flush()
		}
	}
}

// Script returns the command run for hook, or "" when there is none.
func Script(manifest *domain.Manifest, hook domain.Hook, pkgRoot string) string {
	if manifest.HasScript(hook) {
		return manifest.Scripts[string(hook)]
	}
	if hook == domain.HookInstall {
		if _, err := os.Stat(filepath.Join(pkgRoot, "binding.gyp")); err == nil {
			return "node-gyp rebuild"
		}
	}
	return ""
}
