// Package cli defines the gitspatial-tui command tree.
//
// Running the binary without a subcommand opens the TUI. The sync, unsync and
// status subcommands drive the same sync controller headlessly for scripts.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Elpulgo/gitspatial-tui/internal/app"
	"github.com/Elpulgo/gitspatial-tui/internal/config"
	"github.com/Elpulgo/gitspatial-tui/internal/gitspatial"
	"github.com/Elpulgo/gitspatial-tui/internal/logging"
	"github.com/Elpulgo/gitspatial-tui/internal/polling"
	"github.com/Elpulgo/gitspatial-tui/internal/syncctl"
	"github.com/Elpulgo/gitspatial-tui/internal/ui/tokeninput"
	"github.com/Elpulgo/gitspatial-tui/internal/version"
)

// BuildInfo is injected via ldflags by goreleaser.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// TokenStore persists the API token.
type TokenStore interface {
	GetToken() (string, error)
	SetToken(token string) error
	DeleteToken() error
}

// Client is the server API used by every command.
type Client interface {
	syncctl.Client
	Host() string
}

// Env holds the dependencies of the command tree so tests can replace them.
type Env struct {
	Build  BuildInfo
	Stdout io.Writer
	Stderr io.Writer

	Tokens      TokenStore
	NewClient   func(baseURL, token string) (Client, error)
	PromptToken func(update bool) (string, error)
	RunProgram  func(m tea.Model) error
	Checker     *version.Checker
	PollOptions []polling.Option
}

// DefaultEnv returns the production dependencies.
func DefaultEnv(build BuildInfo) *Env {
	return &Env{
		Build:  build,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Tokens: config.NewKeyringStore(),
		NewClient: func(baseURL, token string) (Client, error) {
			c, err := gitspatial.NewClient(baseURL, token,
				gitspatial.WithLogger(logging.With("gitspatial")),
				gitspatial.WithRateLimit(gitspatial.DefaultRateLimit, time.Second),
			)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		PromptToken: promptToken,
		RunProgram: func(m tea.Model) error {
			_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
		Checker: version.NewChecker(build.Version),
	}
}

// ExitError carries a non-zero exit code without an extra error message.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	if err != nil {
		return 1
	}
	return 0
}

// rootOptions holds the persistent flags.
type rootOptions struct {
	configPath  string
	debug       bool
	metricsAddr string
}

// NewRootCmd builds the command tree.
func NewRootCmd(env *Env) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "gitspatial-tui",
		Short: "Sync GitSpatial repositories and feature sets from the terminal",
		Long: `gitspatial-tui lists the repositories and feature sets in your config file
and lets you start or stop their GitSpatial sync, polling the server until
each sync settles.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       env.Build.Version,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, env, opts)
		},
	}
	cmd.SetOut(env.Stdout)
	cmd.SetErr(env.Stderr)
	cmd.SetVersionTemplate(versionLine(env.Build) + "\n")

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/gitspatial-tui/config.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "log at debug level")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9464")

	cmd.AddCommand(
		newAuthCmd(env),
		newVersionCmd(env),
		newSyncCmd(env, opts, app.OpSync),
		newSyncCmd(env, opts, app.OpUnsync),
		newStatusCmd(env, opts),
	)
	return cmd
}

// loadConfig reads the config file. Headless commands fall back to the
// defaults when no file exists.
func (o *rootOptions) loadConfig(allowMissing bool) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFrom(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if allowMissing && errors.Is(err, config.ErrNotConfigured) {
		return config.Default()
	}
	return cfg, err
}

// initLogging points the global logger at a file for the TUI, which owns the
// terminal, and at stderr otherwise.
func (o *rootOptions) initLogging(cfg *config.Config, stderr io.Writer, interactive bool) (func(), error) {
	level := cfg.LogLevel
	if o.debug {
		level = "debug"
	}

	if !interactive {
		logging.Init(logging.Config{Level: level, Format: "console", Output: stderr})
		return func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logging.Init(logging.Config{Level: level, Format: "json", Output: f})
	return func() { _ = f.Close() }, nil
}

// token returns the stored API token, prompting for one on first use.
func token(env *Env) (string, error) {
	t, err := env.Tokens.GetToken()
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, config.ErrNotFound) {
		return "", fmt.Errorf("failed to get API token: %w", err)
	}

	t, err = env.PromptToken(false)
	if err != nil {
		return "", fmt.Errorf("failed to set API token: %w", err)
	}
	if err := env.Tokens.SetToken(t); err != nil {
		return "", fmt.Errorf("failed to save API token to keyring: %w", err)
	}
	return t, nil
}

func runTUI(cmd *cobra.Command, env *Env, opts *rootOptions) error {
	cfg, err := opts.loadConfig(false)
	if err != nil {
		return err
	}
	if len(cfg.Entries()) == 0 {
		return fmt.Errorf("no repos or feature sets configured\nHint: list them under 'repos' and 'feature_sets' in %s", cfg.Path())
	}

	closeLog, err := opts.initLogging(cfg, env.Stderr, true)
	if err != nil {
		return err
	}
	defer closeLog()

	stopMetrics := serveMetrics(cmd.Context(), opts.metricsAddr, logging.With("metrics"))
	defer stopMetrics()

	tok, err := token(env)
	if err != nil {
		return err
	}
	client, err := env.NewClient(cfg.BaseURL, tok)
	if err != nil {
		return fmt.Errorf("failed to create GitSpatial client: %w", err)
	}

	log := logging.With("tui")
	log.Info().Str("host", client.Host()).Int("resources", len(cfg.Entries())).Msg("starting")

	model := app.NewModel(client, cfg, log,
		app.WithHost(client.Host()),
		app.WithVersionCheck(env.Build.Version, env.Checker),
		app.WithPollOptions(env.PollOptions...),
	)
	if err := env.RunProgram(model); err != nil {
		return fmt.Errorf("TUI application error: %w", err)
	}
	return nil
}

// promptToken displays a TUI to prompt the user for their API token.
func promptToken(update bool) (string, error) {
	model := tokeninput.NewModel()
	if update {
		model = tokeninput.NewModelForUpdate()
	}

	m, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", fmt.Errorf("failed to run token input: %w", err)
	}

	final, ok := m.(tokeninput.Model)
	if !ok {
		return "", errors.New("unexpected model type")
	}
	if !final.Submitted() || final.Token() == "" {
		return "", errors.New("token input cancelled or empty")
	}
	return final.Token(), nil
}
