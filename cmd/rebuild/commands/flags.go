package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rebuild/internal/app"
	"go.trai.ch/rebuild/internal/core/domain"
)

// addSelectionFlags registers the flags shared by run and plan.
func addSelectionFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Bool("pending", false, "Rebuild only the packages an earlier install left pending")
	flags.BoolP("prod", "P", false, "Only follow production dependencies")
	flags.BoolP("dev", "D", false, "Only follow development dependencies")
	flags.Bool("no-optional", false, "Do not follow optional dependencies")
	flags.IntP("child-concurrency", "c", domain.DefaultChildConcurrency, "Maximum number of lifecycle scripts run at once")
	flags.Bool("unsafe-perm", false, "Run lifecycle scripts without dropping privileges")
	flags.String("closure", string(domain.ScopeDependents),
		"Nodes kept around the targets for ordering: dependents or dependencies")
	flags.String("lockfile", "", "Lockfile name inside the project directory")
	flags.String("telemetry", "", "Telemetry exporter: none or stdout")
}

// rebuildOptions loads the settings and applies every flag the user set.
func (c *CLI) rebuildOptions(cmd *cobra.Command, args []string) (app.RebuildOptions, error) {
	flags := cmd.Flags()
	dir, err := flags.GetString("dir")
	if err != nil {
		return app.RebuildOptions{}, err
	}
	pending, err := flags.GetBool("pending")
	if err != nil {
		return app.RebuildOptions{}, err
	}

	var flagErr error
	settings, err := c.app.LoadSettings(dir, func(s *domain.Settings) {
		flagErr = applyFlags(cmd, s)
	})
	if err != nil {
		return app.RebuildOptions{}, err
	}
	if flagErr != nil {
		return app.RebuildOptions{}, flagErr
	}

	return app.RebuildOptions{
		Selectors: args,
		Pending:   pending,
		Settings:  settings,
	}, nil
}

func applyFlags(cmd *cobra.Command, s *domain.Settings) error {
	flags := cmd.Flags()

	prod, err := flags.GetBool("prod")
	if err != nil {
		return err
	}
	dev, err := flags.GetBool("dev")
	if err != nil {
		return err
	}
	switch {
	case prod && !dev:
		s.Production, s.Development = true, false
	case dev && !prod:
		s.Production, s.Development, s.Optional = false, true, false
	}
	noOptional, err := flags.GetBool("no-optional")
	if err != nil {
		return err
	}
	if noOptional {
		s.Optional = false
	}

	if flags.Changed("child-concurrency") {
		if s.ChildConcurrency, err = flags.GetInt("child-concurrency"); err != nil {
			return err
		}
	}
	if flags.Changed("unsafe-perm") {
		if s.UnsafePerm, err = flags.GetBool("unsafe-perm"); err != nil {
			return err
		}
	}
	if flags.Changed("lockfile") {
		if s.Lockfile, err = flags.GetString("lockfile"); err != nil {
			return err
		}
	}
	if flags.Changed("telemetry") {
		if s.Telemetry, err = flags.GetString("telemetry"); err != nil {
			return err
		}
	}
	if flags.Changed("closure") {
		raw, err := flags.GetString("closure")
		if err != nil {
			return err
		}
		scope, err := domain.ParseClosureScope(raw)
		if err != nil {
			return err
		}
		s.Closure = scope
	}
	return nil
}
