// Package app is the root Bubble Tea model of the plume terminal editor: one
// document in an editor pane with a status line, help and debounced autosave.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/iw2rmb/plume/buffer"
	"github.com/iw2rmb/plume/editor"
	"github.com/iw2rmb/plume/internal/store"
)

const saveTimeout = 5 * time.Second

// Saver persists document content.
type Saver interface {
	Save(ctx context.Context, id, title, content string) (store.Document, error)
}

// Config configures the root model.
type Config struct {
	Document store.Document
	Saver    Saver

	// Editor is used as is except for Text, which is taken from Document.
	Editor editor.Config

	// AutosaveDelay is the debounce after the last text change. Zero disables
	// autosave; ctrl+s still saves.
	AutosaveDelay time.Duration

	// Renderer styles the status line and the editor. Nil keeps the editor
	// style and uses the default renderer for the status line.
	Renderer *lipgloss.Renderer
}

type autosaveTickMsg struct{ seq int }

type saveResultMsg struct {
	doc     store.Document
	content string
	err     error
}

// eventQueue collects editor change events between two Updates.
type eventQueue struct {
	events []editor.ChangeEvent
}

func (q *eventQueue) push(ev editor.ChangeEvent) { q.events = append(q.events, ev) }

func (q *eventQueue) drain() []editor.ChangeEvent {
	out := q.events
	q.events = nil
	return out
}

// Model is the root application model.
type Model struct {
	doc   store.Document
	saver Saver
	delay time.Duration

	editor editor.Model
	queue  *eventQueue

	keys   keyMap
	help   help.Model
	styles styles

	width, height int

	saving    bool
	queued    bool
	saveSeq   int
	lastSaved time.Time
	saveErr   error
}

// New returns a root model editing cfg.Document.
func New(cfg Config) Model {
	q := &eventQueue{}
	ecfg := cfg.Editor
	ecfg.Text = cfg.Document.Content
	if cfg.Renderer != nil {
		ecfg.Style = editor.StyleFor(cfg.Renderer)
	}
	userHook := ecfg.OnChange
	ecfg.OnChange = func(ev editor.ChangeEvent) {
		q.push(ev)
		if userHook != nil {
			userHook(ev)
		}
	}

	ed := editor.New(ecfg)
	return Model{
		doc:       cfg.Document,
		saver:     cfg.Saver,
		delay:     cfg.AutosaveDelay,
		editor:    ed,
		queue:     q,
		keys:      defaultKeyMap(),
		help:      help.New(),
		styles:    newStyles(cfg.Renderer),
		lastSaved: cfg.Document.Modified,
	}
}

// Document returns the document as last loaded or saved.
func (m Model) Document() store.Document { return m.doc }

// Value returns the current editor text.
func (m Model) Value() string { return m.editor.Value() }

// Dirty reports whether the editor text differs from the saved content.
func (m Model) Dirty() bool { return m.editor.Value() != m.doc.Content }

func (m Model) Init() tea.Cmd { return m.editor.Init() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Save):
			m.saveSeq++
			cmd := m.save()
			return m, cmd
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.layout()
			return m, nil
		}

	case autosaveTickMsg:
		if msg.seq != m.saveSeq || !m.Dirty() {
			return m, nil
		}
		cmd := m.save()
		return m, cmd

	case saveResultMsg:
		return m.handleSaveResult(msg)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	autosave := m.handleEvents()
	return m, tea.Batch(cmd, autosave)
}

// handleEvents logs session changes and re-arms autosave after text edits.
func (m *Model) handleEvents() tea.Cmd {
	changed := false
	for _, ev := range m.queue.drain() {
		if !ev.TextChanged {
			continue
		}
		changed = true
		for _, c := range ev.Changes {
			if c.TextChanged() {
				m.logChange(c)
			}
		}
	}
	if !changed {
		return nil
	}
	m.saveErr = nil
	m.saveSeq++
	return m.scheduleAutosave()
}

// changeDiff renders a change for the debug log.
var changeDiff = buffer.Change.Diff

// logChange writes c with its diff at debug level. The diff is only built
// when debug logging is enabled.
func (m *Model) logChange(c buffer.Change) {
	e := log.Debug()
	if !e.Enabled() {
		return
	}
	e.Str("doc", m.doc.ID).
		Stringer("kind", c.Kind).
		Str("diff", changeDiff(c)).
		Msg("document change")
}

func (m *Model) scheduleAutosave() tea.Cmd {
	if m.delay <= 0 || m.saver == nil {
		return nil
	}
	seq := m.saveSeq
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return autosaveTickMsg{seq: seq}
	})
}

// save starts a background save of the current text.
func (m *Model) save() tea.Cmd {
	if m.saver == nil {
		return nil
	}
	if m.saving {
		m.queued = true
		return nil
	}
	m.saving = true
	m.saveErr = nil

	saver := m.saver
	id, title, content := m.doc.ID, m.doc.Title, m.editor.Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		doc, err := saver.Save(ctx, id, title, content)
		return saveResultMsg{doc: doc, content: content, err: err}
	}
}

func (m Model) handleSaveResult(msg saveResultMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.err != nil {
		m.saveErr = msg.err
		m.queued = false
		log.Warn().Err(msg.err).Str("doc", m.doc.ID).Msg("failed to save document")
		return m, nil
	}

	m.doc = msg.doc
	m.lastSaved = msg.doc.Modified
	log.Info().Str("doc", m.doc.ID).Int("bytes", len(msg.content)).Msg("document saved")

	if !m.Dirty() {
		m.queued = false
		return m, nil
	}
	if m.queued {
		m.queued = false
		cmd := m.save()
		return m, cmd
	}
	m.saveSeq++
	cmd := m.scheduleAutosave()
	return m, cmd
}

func (m *Model) layout() {
	m.help.Width = m.width
	h := m.height - 1 - lipgloss.Height(m.helpView())
	m.editor = m.editor.SetSize(m.width, h)
}

func (m Model) helpView() string {
	return m.help.View(helpKeys{app: m.keys, editor: m.editor.KeyMap()})
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.editor.View())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	if hv := m.helpView(); hv != "" {
		b.WriteString("\n")
		b.WriteString(hv)
	}
	return b.String()
}
