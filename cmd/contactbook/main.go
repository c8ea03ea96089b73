package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/smileynet/contactbook/internal/config"
	"github.com/smileynet/contactbook/internal/contact"
	"github.com/smileynet/contactbook/internal/kv"
	"github.com/smileynet/contactbook/internal/logging"
	"github.com/smileynet/contactbook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for contactbook.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Add     AddCmd           `cmd:"" help:"Add a contact, replacing any contact with the same name."`
	Update  UpdateCmd        `cmd:"" help:"Replace an existing contact with a new name and number."`
	Delete  DeleteCmd        `cmd:"" help:"Delete a contact."`
	Get     GetCmd           `cmd:"" help:"Show one contact."`
	List    ListCmd          `cmd:"" help:"List all contacts."`
	UI      UICmd            `cmd:"" name:"ui" help:"Open the interactive contact screen."`
}

// Globals are flags shared by every command. Unset flags fall back to config.
type Globals struct {
	Config  string `help:"Extra config file, applied after the user and project configs." type:"path"`
	Backend string `help:"Storage backend: json, sqlite or memory."`
	Dir     string `help:"Directory holding the contact store." type:"path"`
}

// loadConfig loads layered config from user and project paths with env and
// flag overrides.
func (g *Globals) loadConfig() (*config.Config, error) {
	paths := []string{
		os.ExpandEnv("$HOME/.config/contactbook/config.yaml"),
		".contactbook/config.yaml",
	}
	if g.Config != "" {
		paths = append(paths, g.Config)
	}
	cfg, err := config.LoadLayered(paths...)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if g.Backend != "" {
		cfg.Store.Backend = g.Backend
	}
	if g.Dir != "" {
		cfg.Store.Dir = g.Dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withBook opens the configured store, runs fn against it, and releases
// everything afterwards. Storage failures are logged; user errors are not.
func (g *Globals) withBook(fn func(*contact.Book) error) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stderr sync fails on some terminals

	store, closeStore, err := kv.Open(cfg.Store.Backend, cfg.Store.Dir, cfg.Store.Name)
	if err != nil {
		logger.Error("opening store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("closing store", zap.Error(err))
		}
	}()

	err = fn(contact.NewBook(store, contact.WithLogger(logger)))
	if err != nil && !contact.IsUserError(err) {
		logger.Error("store operation failed", zap.Error(err))
	}
	return err
}

// AddCmd adds a contact.
type AddCmd struct {
	Name  string `arg:"" help:"Contact name. The first letter is capitalized."`
	Phone string `arg:"" help:"10-digit phone number."`
}

// Run executes the add command.
func (a *AddCmd) Run(g *Globals) error {
	return g.withBook(func(b *contact.Book) error { return a.run(os.Stdout, b) })
}

func (a *AddCmd) run(w io.Writer, b *contact.Book) error {
	c, err := b.Add(a.Name, a.Phone)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Saved %s %s\n", c.Name, c.Phone)
	return nil
}

// UpdateCmd replaces a contact.
type UpdateCmd struct {
	Old   string `arg:"" help:"Name of the contact to replace. An exact match wins, then the capitalized form."`
	Name  string `arg:"" help:"New name. The first letter is capitalized."`
	Phone string `arg:"" help:"New 10-digit phone number."`
}

// Run executes the update command.
func (u *UpdateCmd) Run(g *Globals) error {
	return g.withBook(func(b *contact.Book) error { return u.run(os.Stdout, b) })
}

func (u *UpdateCmd) run(w io.Writer, b *contact.Book) error {
	// Only contacts that exist can be selected for update.
	old, err := b.Get(u.Old)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	s := contact.NewSession(b)
	s.Select(old.Name)
	c, _, err := s.Submit(u.Name, u.Phone)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Updated %s %s\n", c.Name, c.Phone)
	return nil
}

// DeleteCmd deletes a contact.
type DeleteCmd struct {
	Name string `arg:"" help:"Name of the contact to delete. An exact match wins, then the capitalized form."`
}

// Run executes the delete command.
func (d *DeleteCmd) Run(g *Globals) error {
	return g.withBook(func(b *contact.Book) error { return d.run(os.Stdout, b) })
}

func (d *DeleteCmd) run(w io.Writer, b *contact.Book) error {
	c, err := b.Get(d.Name)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if err := b.Delete(c.Name); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Deleted %s\n", c.Name)
	return nil
}

// GetCmd prints one contact.
type GetCmd struct {
	Name string `arg:"" help:"Name of the contact to show. An exact match wins, then the capitalized form."`
}

// Run executes the get command.
func (g *GetCmd) Run(globals *Globals) error {
	return globals.withBook(func(b *contact.Book) error { return g.run(os.Stdout, b) })
}

func (g *GetCmd) run(w io.Writer, b *contact.Book) error {
	c, err := b.Get(g.Name)
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}
	_, _ = fmt.Fprintln(w, c.Phone)
	return nil
}

// ListCmd prints every contact.
type ListCmd struct {
	JSON bool `help:"Print contacts as a JSON array." name:"json"`
}

// Run executes the list command.
func (l *ListCmd) Run(g *Globals) error {
	return g.withBook(func(b *contact.Book) error { return l.run(os.Stdout, b) })
}

func (l *ListCmd) run(w io.Writer, b *contact.Book) error {
	contacts, err := b.List()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	contact.SortByName(contacts)

	if l.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(contacts)
	}
	if len(contacts) == 0 {
		_, _ = fmt.Fprintln(w, "No contacts")
		return nil
	}
	for _, c := range contacts {
		_, _ = fmt.Fprintf(w, "%-20s %s\n", c.Name, c.Phone)
	}
	return nil
}

// UICmd opens the interactive contact screen.
type UICmd struct{}

// Run checks for a terminal and launches the TUI.
func (u *UICmd) Run(g *Globals) error {
	isTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return g.withBook(func(b *contact.Book) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return u.run(isTTY, func() error {
			return tui.Run(ctx, b, tea.WithAltScreen())
		})
	})
}

// run executes the screen, enabling testable wiring.
func (u *UICmd) run(isTTY bool, start func() error) error {
	if !isTTY {
		return errors.New("ui: requires a terminal (TTY)")
	}
	return start()
}

// Exit codes.
const (
	exitSuccess = 0
	exitUser    = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if contact.IsUserError(err) {
		return exitUser
	}
	return exitSetup
}

// describe returns the message printed for err: the short notification for
// user errors, the full chain otherwise.
func describe(err error) string {
	if msg := contact.Message(err); msg != "" {
		return msg
	}
	return err.Error()
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contactbook"),
		kong.Description("Store personal contacts in a local key-value store."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", describe(err))
		os.Exit(exitCode(err))
	}
}
