package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/iw2rmb/plume"
	"github.com/iw2rmb/plume/editor"
	"github.com/iw2rmb/plume/internal/app"
	"github.com/iw2rmb/plume/internal/config"
	"github.com/iw2rmb/plume/internal/logging"
	"github.com/iw2rmb/plume/internal/store"
)

const usage = `usage: plume [-config path] <command> [args]

commands:
  new [-title T] [-detach]   create a blank document and open it
  edit <id>                  open a document
  fork <id> [-title T]       copy a document and open the copy
  list                       list documents, newest first
  render <id>                print a document's content
  version                    print the version
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "plume: %v\n", err)
		os.Exit(1)
	}
}

// run parses global flags and dispatches a subcommand.
func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("plume", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", config.DefaultPath(), "Path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errors.New("missing command")
	}
	cmd, cmdArgs := rest[0], rest[1:]
	if cmd == "version" {
		fmt.Fprintln(stdout, "plume", plume.VersionTag())
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logFile, err := config.ExpandPath(cfg.Log.File)
	if err != nil {
		return err
	}
	closer, err := logging.Setup(cfg.Log.Level, logFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	dbPath, err := config.ExpandPath(cfg.Store.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	c := &cli{cfg: cfg, store: st, stdout: stdout, stderr: stderr, open: openEditor}
	ctx := context.Background()

	switch cmd {
	case "new":
		return c.newDoc(ctx, cmdArgs)
	case "edit":
		id, err := oneID("edit", cmdArgs)
		if err != nil {
			return err
		}
		doc, err := st.Get(ctx, id)
		if err != nil {
			return err
		}
		return c.edit(ctx, doc)
	case "fork":
		return c.fork(ctx, cmdArgs)
	case "list":
		return c.list(ctx)
	case "render":
		id, err := oneID("render", cmdArgs)
		if err != nil {
			return err
		}
		doc, err := st.Get(ctx, id)
		if err != nil {
			return err
		}
		_, err = io.WriteString(stdout, doc.Content)
		return err
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// openEditor overrides the interactive editor when set.
var openEditor func(ctx context.Context, doc store.Document) error

type cli struct {
	cfg    *config.Config
	store  *store.Store
	stdout io.Writer
	stderr io.Writer

	open func(ctx context.Context, doc store.Document) error
}

func oneID(cmd string, args []string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", fmt.Errorf("%s: expected exactly one document id", cmd)
	}
	return args[0], nil
}

func (c *cli) newDoc(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	title := fs.String("title", "", "Document title")
	detach := fs.Bool("detach", false, "Print the new id instead of opening the editor")
	if err := fs.Parse(args); err != nil {
		return err
	}

	doc, err := c.store.Create(ctx, *title, "")
	if err != nil {
		return err
	}
	log.Info().Str("doc", doc.ID).Msg("document created")
	if *detach {
		fmt.Fprintln(c.stdout, doc.ID)
		return nil
	}
	return c.edit(ctx, doc)
}

func (c *cli) fork(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fork", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	title := fs.String("title", "", "Title of the copy (defaults to the source title)")
	detach := fs.Bool("detach", false, "Print the new id instead of opening the editor")

	// Accept the id before or after flags.
	var id string
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		id, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if id == "" {
		var err error
		if id, err = oneID("fork", fs.Args()); err != nil {
			return err
		}
	}

	doc, err := c.store.Fork(ctx, id, *title)
	if err != nil {
		return err
	}
	log.Info().Str("doc", doc.ID).Str("fork_from", id).Msg("document forked")
	if *detach {
		fmt.Fprintln(c.stdout, doc.ID)
		return nil
	}
	return c.edit(ctx, doc)
}

func (c *cli) list(ctx context.Context) error {
	docs, err := c.store.List(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tMODIFIED\tFORK OF")
	for _, d := range docs {
		title := d.Title
		if title == "" {
			title = "untitled"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.ID, title, d.Modified.Local().Format(time.DateTime), d.ForkFrom)
	}
	return tw.Flush()
}

func (c *cli) edit(ctx context.Context, doc store.Document) error {
	if c.open != nil {
		return c.open(ctx, doc)
	}

	ecfg := editor.DefaultConfig()
	ecfg.ShowLineNums = c.cfg.Editor.ShowLineNumbers
	ecfg.HistoryLimit = c.cfg.Editor.HistoryLimit
	if c.cfg.Editor.TabWidth > 0 {
		ecfg.TabWidth = c.cfg.Editor.TabWidth
	}
	ecfg.Clipboard = newClipboard()

	var delay time.Duration
	if c.cfg.Autosave.Enabled {
		delay = time.Duration(c.cfg.Autosave.DelayMS) * time.Millisecond
	}

	model := app.New(app.Config{
		Document:      doc,
		Saver:         c.store,
		Editor:        ecfg,
		AutosaveDelay: delay,
	})

	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	// Flush edits made after the last save.
	if m, ok := final.(app.Model); ok && m.Dirty() {
		cur := m.Document()
		if _, err := c.store.Save(ctx, cur.ID, cur.Title, m.Value()); err != nil {
			return fmt.Errorf("save on exit: %w", err)
		}
		log.Info().Str("doc", cur.ID).Msg("saved on exit")
	}
	return nil
}
