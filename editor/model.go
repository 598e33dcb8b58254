package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/iw2rmb/plume/buffer"
)

// Model is a Bubble Tea component that renders and edits one document.
type Model struct {
	cfg  Config
	buf  *buffer.Buffer
	sess *buffer.Session
	rec  *changeRecorder

	focused bool

	viewport viewport.Model
	// xOffset is the first text cell shown right of the gutter.
	xOffset int

	lastBufVersion uint64
	lastText       string

	mouseAnchor   int
	mouseDragging bool

	err error
}

func New(cfg Config) Model {
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = defaultTabWidth
	}
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}

	rec := &changeRecorder{}
	buf := buffer.New("")
	sess := buffer.NewSession(buf,
		buffer.WithHistoryLimit(cfg.HistoryLimit),
		buffer.WithLogger(log.With().Str("component", "session").Logger()),
		buffer.WithOnChange(rec.record),
	)

	m := Model{
		cfg:      cfg,
		buf:      buf,
		sess:     sess,
		rec:      rec,
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	if err := sess.Load(cfg.Text); err != nil {
		m.err = err
	}
	rec.take()
	m.lastBufVersion = buf.Version()
	m.lastText = buf.Text()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

func (m Model) Session() *buffer.Session { return m.sess }

// Value returns the current document text.
func (m Model) Value() string { return m.buf.Text() }

func (m Model) Cursor() buffer.Pos { return m.buf.Cursor() }

// KeyMap returns the active key bindings.
func (m Model) KeyMap() KeyMap { return m.cfg.KeyMap }

// Err returns the last error reported by a session operation, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.mouseDragging = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	}

	if m.syncFromBuffer() {
		m.followCursor()
	}
	return m, cmd
}

func (m Model) View() string { return m.viewport.View() }

// syncFromBuffer re-renders after a buffer change and notifies OnChange.
func (m *Model) syncFromBuffer() bool {
	ver := m.buf.Version()
	if ver == m.lastBufVersion {
		m.rec.take()
		return false
	}
	ev := buildChangeEvent(m.buf, m.lastText, m.rec.take())
	m.lastBufVersion = ver
	m.lastText = ev.Text
	m.rebuildContent()
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(ev)
	}
	return true
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	cur := m.buf.Cursor()
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if cur.Row < y {
		m.viewport.SetYOffset(cur.Row)
	} else if cur.Row >= y+h {
		m.viewport.SetYOffset(cur.Row - h + 1)
	}

	m.followCursorColumn(cur)
}

// followCursorColumn scrolls horizontally so the caret cell stays inside the
// text area.
func (m *Model) followCursorColumn(cur buffer.Pos) {
	w := m.textWidth()
	if w <= 0 {
		return
	}
	lines := m.buf.Lines()
	if cur.Row >= len(lines) {
		return
	}
	cell := cellsBefore(lines[cur.Row], cur.Col, m.cfg.TabWidth)

	x := m.xOffset
	if cell < x {
		x = cell
	} else if cell >= x+w {
		x = cell - w + 1
	}
	if x != m.xOffset {
		m.xOffset = x
		m.rebuildContent()
	}
}

func (m *Model) fail(op string, err error) {
	m.err = err
	log.Error().Err(err).Str("op", op).Msg("editor operation failed")
}
