// Package cli is the listmenu command line: it reads the elements, loads the
// configuration and runs the menu on the chosen frontend.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/carlmjohnson/versioninfo"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"listmenu/internal/backend"
	"listmenu/internal/config"
	"listmenu/internal/discovery"
	"listmenu/internal/eventbus"
	"listmenu/internal/grid"
	"listmenu/internal/logging"
	"listmenu/internal/loop"
	"listmenu/internal/menu"
	"listmenu/internal/ui"
)

// Version is public so it can be set at build time with
// -ldflags "-X listmenu/internal/cli.Version=vX.Y.Z"
var Version = ""

// ExitQuit is the exit status after the user quit without selecting
const ExitQuit = 130

const envPrefix = "LISTMENU"

// App holds the process environment the command runs in
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// StdinIsTerminal reports whether In is an interactive terminal
	StdinIsTerminal func() bool
	// OpenBackend opens the terminal for the cell frontend
	OpenBackend func() (backend.Backend, error)
	// RunTea runs the bubbletea frontend
	RunTea func(m *ui.Model, opts ...tea.ProgramOption) (string, error)
	// CopyToClipboard is used by --clipboard
	CopyToClipboard func(string) error
}

// DefaultApp returns an App wired to the process stdio and terminal
func DefaultApp() *App {
	return &App{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
		StdinIsTerminal: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		OpenBackend: func() (backend.Backend, error) {
			return backend.OpenTerminal()
		},
		RunTea:          ui.Run,
		CopyToClipboard: clipboard.WriteAll,
	}
}

// Execute runs the command line and returns the process exit status
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := DefaultApp()
	return exitCode(app.Err, NewRootCommand(app).ExecuteContext(ctx))
}

// exitCode reports err on w and maps it to an exit status. Quitting and
// being interrupted by a signal both exit with ExitQuit.
func exitCode(w io.Writer, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, loop.ErrQuit), errors.Is(err, context.Canceled):
		return ExitQuit
	}
	fmt.Fprintf(w, "listmenu: %v\n", err)
	return 1
}

func getVersion() string {
	if Version != "" {
		return Version
	}
	return versioninfo.Short()
}

// NewRootCommand builds the listmenu command tree for app
func NewRootCommand(app *App) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "listmenu [flags] [elements...]",
		Short: "listmenu: pick one line from a list",
		Long: fmt.Sprintf(`listmenu %s

listmenu shows a scrollable menu of elements and prints the one you pick.
Elements come from the arguments, from --file, from the files under --walk,
or one per line on stdin.
Flags can also be given as LISTMENU_* environment variables.`, getVersion()),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, args)
		},
		Version:       getVersion(),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.Err)
	root.SetVersionTemplate(`{{printf "listmenu %s\n" .Version}}`)
	addFlags(root)
	root.AddCommand(newConfigCommand(app))
	return root
}

func configService(cmd *cobra.Command, bus eventbus.EventBus) config.ConfigService {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	return config.NewConfigServiceWithBus(bus, path)
}

// settings merges the config file with the flags given
func settings(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("wrap") {
		cfg.Wrap, _ = flags.GetBool("wrap")
	}
	if flags.Changed("frontend") {
		cfg.Frontend, _ = flags.GetString("frontend")
	}
	if flags.Changed("header") {
		cfg.Header, _ = flags.GetString("header")
	}
	if flags.Changed("log-file") {
		cfg.Log.File, _ = flags.GetString("log-file")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	return cfg.Validate()
}

func (a *App) run(cmd *cobra.Command, args []string) error {
	bus := eventbus.New()

	cfg, err := configService(cmd, bus).Load()
	if err != nil {
		return err
	}
	if err := settings(cmd, cfg); err != nil {
		return err
	}

	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()
	defer logging.Attach(bus, log)()

	flags := cmd.Flags()
	src := source{scan: discovery.Options{Bus: bus}}
	src.file, _ = flags.GetString("file")
	src.walk, _ = flags.GetString("walk")
	src.scan.MaxDepth, _ = flags.GetInt("walk-depth")
	src.scan.Hidden, _ = flags.GetBool("hidden")
	elements, err := a.elements(cmd.Context(), args, src)
	if err != nil {
		return err
	}
	cursor, _ := flags.GetInt("cursor")
	nav, err := menu.New(elements, 1, menu.WithCursor(cursor), menu.WithWrap(cfg.Wrap), menu.WithBus(bus))
	if err != nil {
		return err
	}
	log.WithField("elements", nav.Len()).WithField("frontend", cfg.Frontend).Debug("starting menu")

	sel, err := a.show(cmd.Context(), cfg, nav, bus)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.Out, sel)
	if copyFlag, _ := flags.GetBool("clipboard"); copyFlag {
		if err := a.CopyToClipboard(sel); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
	}
	return nil
}

// show runs the menu on the configured frontend until a selection, a quit key
// or the end of ctx
func (a *App) show(ctx context.Context, cfg *config.Config, nav *menu.Navigator, bus eventbus.EventBus) (string, error) {
	// Validate has already checked every value below
	bindings, _ := cfg.Bindings()
	palettes, _ := cfg.Palettes()
	fg, bg, _ := cfg.DefaultColors()
	var header *grid.Header
	if cfg.Header != "" {
		hp, _ := cfg.HeaderPalette()
		header = &grid.Header{Text: cfg.Header, Palette: hp}
	}

	if cfg.Frontend == config.FrontendTea {
		m := ui.NewModel(nav, bindings,
			ui.WithHeader(header),
			ui.WithPalettes(palettes),
			ui.WithDefaultColors(fg, bg),
			ui.WithBus(bus),
		)
		opts := []tea.ProgramOption{tea.WithContext(ctx)}
		if !a.StdinIsTerminal() {
			opts = append(opts, tea.WithInputTTY())
		}
		sel, err := a.RunTea(m, opts...)
		if err != nil && ctx.Err() != nil {
			return "", ctx.Err()
		}
		return sel, err
	}

	b, err := a.OpenBackend()
	if err != nil {
		return "", err
	}
	sel, err := loop.Run(b, nav, bindings,
		loop.WithHeader(header),
		loop.WithPalettes(palettes),
		loop.WithDefaultColors(fg, bg),
		loop.WithBus(bus),
		loop.WithContext(ctx),
	)
	b.Close()
	return sel, err
}
