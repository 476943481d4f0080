package commands

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/rebuild/internal/adapters/telemetry"
	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [selectors...]",
		Short: "Rebuild the selected packages, or every package when none are given",
		Long: "Selectors are package names or name@range. Without selectors every package\n" +
			"is rebuilt, together with the project's own lifecycle scripts.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			opts, err := c.rebuildOptions(cmd, args)
			if err != nil {
				return err
			}

			shutdown, err := startTelemetry(cmd.Context(), opts.Settings.Telemetry, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, shutdown(context.WithoutCancel(cmd.Context())))
			}()

			_, err = c.app.Rebuild(cmd.Context(), opts)
			return err
		},
	}
	addSelectionFlags(cmd)
	return cmd
}

// startTelemetry installs the exporter named in the settings.
func startTelemetry(ctx context.Context, exporter string, w io.Writer) (func(context.Context) error, error) {
	switch exporter {
	case "", "none":
		return func(context.Context) error { return nil }, nil
	case "stdout":
		shutdown, err := telemetry.Setup(ctx, w)
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrTelemetrySetupFailed.Error())
		}
		return shutdown, nil
	default:
		return nil, domain.ErrorWith(domain.ErrUnknownExporter, "exporter", exporter)
	}
}
