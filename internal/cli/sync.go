package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Elpulgo/gitspatial-tui/internal/app"
	"github.com/Elpulgo/gitspatial-tui/internal/config"
	"github.com/Elpulgo/gitspatial-tui/internal/gitspatial"
	"github.com/Elpulgo/gitspatial-tui/internal/logging"
	"github.com/Elpulgo/gitspatial-tui/internal/polling"
	"github.com/Elpulgo/gitspatial-tui/internal/status"
	"github.com/Elpulgo/gitspatial-tui/internal/syncctl"
)

// DefaultTimeout bounds how long sync and unsync wait for a settled status.
const DefaultTimeout = 10 * time.Minute

type waitOptions struct {
	timeout  time.Duration
	interval time.Duration
}

func addWaitFlags(fs *pflag.FlagSet, w *waitOptions) {
	fs.DurationVar(&w.timeout, "timeout", DefaultTimeout, "give up waiting after this long")
	fs.DurationVar(&w.interval, "interval", polling.Interval, "delay between status queries")
}

func (w *waitOptions) pollOptions(env *Env) []polling.Option {
	opts := append([]polling.Option{}, env.PollOptions...)
	if w.interval != polling.Interval {
		opts = append(opts, polling.WithInterval(w.interval))
	}
	return opts
}

func newSyncCmd(env *Env, root *rootOptions, op app.Op) *cobra.Command {
	wait := &waitOptions{}

	short := "Start syncing a repo or feature set and wait until it settles"
	if op == app.OpUnsync {
		short = "Stop syncing a repo or feature set"
	}

	cmd := &cobra.Command{
		Use:     string(op) + " <repo|feature_set> <id>",
		Short:   short,
		Args:    cobra.ExactArgs(2),
		Example: fmt.Sprintf("  gitspatial-tui %s repo 42\n  gitspatial-tui %s feature_set 7 --timeout 2m", op, op),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0], args[1])
			if err != nil {
				return err
			}

			client, cleanup, err := headlessClient(cmd, env, root)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(cmd.Context(), wait.timeout)
			defer cancel()

			outcome, err := app.RunOnce(ctx, client, ref, op, logging.With(string(op)), wait.pollOptions(env)...)
			if errors.Is(err, app.ErrSyncInProgress) {
				return fmt.Errorf("%s: %w", ref, err)
			}
			if err != nil {
				if ctx.Err() != nil {
					return fmt.Errorf("%s: no settled status after %s", ref, wait.timeout)
				}
				return err
			}

			printOutcome(cmd.OutOrStdout(), outcome)
			if outcome.Notice != "" || (op == app.OpSync && outcome.Status.Failed()) {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}
	addWaitFlags(cmd.Flags(), wait)
	return cmd
}

func newStatusCmd(env *Env, root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status [<repo|feature_set> <id>]",
		Short: "Print the sync status of one resource or of every configured resource",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := headlessClient(cmd, env, root)
			if err != nil {
				return err
			}
			defer cleanup()

			var entries []config.Entry
			if len(args) == 2 {
				ref, err := parseRef(args[0], args[1])
				if err != nil {
					return err
				}
				entries = []config.Entry{{Ref: ref, Name: ref.String()}}
			} else {
				cfg, err := root.loadConfig(false)
				if err != nil {
					return err
				}
				entries = cfg.Entries()
			}
			if len(entries) == 0 {
				return errors.New("no repos or feature sets configured")
			}

			t := table.New().
				Border(lipgloss.HiddenBorder()).
				Headers("REF", "NAME", "STATUS")

			failed := false
			for _, e := range entries {
				s, err := client.SyncStatus(e.Ref)
				label := ""
				if err != nil {
					failed = true
					label = "unavailable: " + gitspatial.FailureMessage(err)
				} else {
					label = statusLabel(e.Ref, s)
				}
				t.Row(e.Ref.String(), e.Name, label)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())

			if failed {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}
}

// headlessClient loads the config, configures stderr logging and builds a
// client from the stored token without prompting.
func headlessClient(cmd *cobra.Command, env *Env, root *rootOptions) (Client, func(), error) {
	cfg, err := root.loadConfig(true)
	if err != nil {
		return nil, nil, err
	}
	closeLog, err := root.initLogging(cfg, cmd.ErrOrStderr(), false)
	if err != nil {
		return nil, nil, err
	}
	stopMetrics := serveMetrics(cmd.Context(), root.metricsAddr, logging.With("metrics"))
	cleanup := func() {
		stopMetrics()
		closeLog()
	}

	tok, err := env.Tokens.GetToken()
	if err != nil {
		cleanup()
		if errors.Is(err, config.ErrNotFound) {
			return nil, nil, fmt.Errorf("no API token found\nHint: run 'gitspatial-tui auth' or set %s", config.TokenEnvVar)
		}
		return nil, nil, fmt.Errorf("failed to get API token: %w", err)
	}

	client, err := env.NewClient(cfg.BaseURL, tok)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create GitSpatial client: %w", err)
	}
	return client, cleanup, nil
}

func parseRef(kind, id string) (gitspatial.Ref, error) {
	k, err := gitspatial.ParseKind(kind)
	if err != nil {
		return gitspatial.Ref{}, err
	}
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		return gitspatial.Ref{}, fmt.Errorf("invalid id %q: must be a positive integer", id)
	}
	return gitspatial.Ref{Kind: k, ID: n}, nil
}

func statusLabel(ref gitspatial.Ref, s status.Status) string {
	attrs, err := syncctl.CatalogFor(ref.Kind).Lookup(s)
	if err != nil {
		return string(s)
	}
	return attrs.StatusLabel
}

func printOutcome(w io.Writer, o app.Outcome) {
	label := statusLabel(o.Ref, o.Status)
	switch {
	case o.Notice != "":
		fmt.Fprintf(w, "%s: %s: %s\n", o.Ref, label, o.Notice)
	case !o.Changed && o.Initial == o.Status:
		fmt.Fprintf(w, "%s: %s (unchanged)\n", o.Ref, label)
	default:
		fmt.Fprintf(w, "%s: %s\n", o.Ref, label)
	}
}
