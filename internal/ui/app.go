package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shopper/internal/backend"
	"github.com/five82/shopper/internal/similar"
	"github.com/five82/shopper/internal/state"
	"github.com/five82/shopper/internal/toast"
	"github.com/five82/shopper/internal/upload"
	"github.com/five82/shopper/internal/videolink"
)

// Tab selects the active input flow.
type Tab int

const (
	TabLink Tab = iota
	TabUpload
)

func (t Tab) String() string {
	if t == TabUpload {
		return "Upload File"
	}
	return "Video Link"
}

// Options configures the UI. Toasts, Previews and Theme are owned by the
// caller, which tears them down after Run returns.
type Options struct {
	Context      context.Context
	API          backend.API
	Store        *state.Store
	Toasts       *toast.Manager
	Previews     *upload.PreviewRegistry
	Theme        *ThemeController
	LinkAnalyzer videolink.Analyzer
	Logger       *slog.Logger
	PollTick     time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	api          backend.API
	store        *state.Store
	toasts       *toast.Manager
	themeCtl     *ThemeController
	linkAnalyzer videolink.Analyzer
	logger       *slog.Logger
	pollTick     time.Duration
	keys         keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	tab      Tab
	editing  bool
	showHelp bool
	modal    Modal
	lookup   *similar.Lookup

	input   textinput.Model
	spinner spinner.Model
	help    help.Model

	// Flows
	upload    *upload.Controller
	link      *videolink.Controller
	uploadSeq int

	// Results state
	products    []backend.DetectedProduct
	loading     bool
	analyzed    bool
	demo        bool
	selected    int
	results     viewport.Model
	cardOffsets []int
	reveal      bool

	// Data state
	snapshot     state.Snapshot
	toastTicking bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	toasts := opts.Toasts
	if toasts == nil {
		toasts = toast.NewManager()
	}

	themeCtl := opts.Theme
	if themeCtl == nil {
		themeCtl = &ThemeController{dark: true}
	}

	linkAnalyzer := opts.LinkAnalyzer
	if linkAnalyzer == nil {
		linkAnalyzer = videolink.SimulatedAnalyzer{Delay: videolink.DefaultSimulatedDelay}
	}

	in := textinput.New()
	in.Prompt = "› "
	in.CharLimit = 2048

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:          ctx,
		api:          opts.API,
		store:        opts.Store,
		toasts:       toasts,
		themeCtl:     themeCtl,
		linkAnalyzer: linkAnalyzer,
		logger:       logger,
		pollTick:     pollTick,
		keys:         DefaultKeyMap(),
		theme:        themeCtl.Theme(),
		tab:          TabLink,
		input:        in,
		spinner:      sp,
		help:         help.New(),
		upload:       upload.NewController(toasts, opts.Previews),
		link:         &videolink.Controller{},
		lookup:       similar.NewLookup(similar.NewSet(opts.API)),
		results:      viewport.New(0, 0),
	}
	m.resetInput()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		m.spinner.Tick,
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncResults()
	if tc := next.toastFrames(); tc != nil {
		cmd = tea.Batch(cmd, tc)
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		cmds = append(cmds, tickCmd(m.pollTick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case toastsChangedMsg:
		return m, nil

	case toastFrameMsg:
		if m.toasts.Len() > 0 {
			return m, toastFrameCmd()
		}
		m.toastTicking = false
		return m, nil

	case uploadDoneMsg:
		return m.handleUploadDone(msg), nil

	case linkDoneMsg:
		return m.handleLinkDone(msg), nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.modal != nil {
			next, mcmd, _ := m.modal.Update(msg, m.keys)
			m.modal = next
			cmds = append(cmds, mcmd)
		}
		return m, tea.Batch(cmds...)
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}
	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}

	if msg.Paste {
		return m.handlePaste(string(msg.Runes))
	}

	if m.editing {
		return m.handleEditKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		if err := m.themeCtl.Toggle(); err != nil {
			m.logger.Warn("theme preference not saved", "error", err)
			m.toasts.Warning(err.Error(), "Theme Not Saved")
		}
		m.theme = m.themeCtl.Theme()
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab(ternaryTab(m.tab == TabLink, TabUpload, TabLink)), nil

	case key.Matches(msg, m.keys.TabLink):
		return m.switchTab(TabLink), nil

	case key.Matches(msg, m.keys.TabUpload):
		return m.switchTab(TabUpload), nil

	case key.Matches(msg, m.keys.DismissToast):
		if active := m.toasts.Active(); len(active) > 0 {
			m.toasts.Remove(active[len(active)-1].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		return m.startEditing()

	case key.Matches(msg, m.keys.Analyze):
		return m.analyze()

	case key.Matches(msg, m.keys.ClearFile):
		if m.tab == TabUpload && m.upload.Selection() != nil {
			m.upload.Clear()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.revealSelected()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.products)-1 {
			m.selected++
			m.revealSelected()
		}
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.results.HalfPageUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.results.HalfPageDown()
		return m, nil

	case key.Matches(msg, m.keys.FindSimilar):
		return m.openSimilar()
	}

	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.input.Blur()
		if m.tab == TabUpload {
			m.upload.DragLeave()
		}
		m.resetInput()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.editing = false
		m.input.Blur()
		if m.tab == TabUpload {
			path := m.input.Value()
			m.resetInput()
			if strings.TrimSpace(path) == "" {
				m.upload.DragLeave()
				return m, nil
			}
			m.dropFile(path)
			return m, nil
		}
		m.link.SetURL(strings.TrimSpace(m.input.Value()))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.tab == TabUpload {
		m.upload.DragOver(m.input.Value())
	} else {
		m.link.SetURL(strings.TrimSpace(m.input.Value()))
	}
	return m, cmd
}

// handlePaste treats a bracketed paste as a drop on the upload tab and as
// the whole link on the link tab.
func (m Model) handlePaste(text string) (Model, tea.Cmd) {
	text = strings.TrimSpace(text)
	if text == "" {
		return m, nil
	}
	m.editing = false
	m.input.Blur()
	if m.tab == TabUpload {
		m.upload.DragOver(text)
		m.resetInput()
		m.dropFile(text)
		return m, nil
	}
	m.link.SetURL(text)
	m.input.SetValue(text)
	return m, nil
}

func (m *Model) dropFile(path string) {
	if err := m.upload.Drop(path); err != nil {
		switch {
		case errors.Is(err, upload.ErrNotVideo):
			m.logger.Info("rejected non-video file", "path", path)
		case errors.Is(err, upload.ErrBusy):
			m.toasts.Warning("Wait for the current upload to finish", "Upload In Progress")
		default:
			m.logger.Warn("file selection failed", "path", path, "error", err)
		}
		return
	}
	if sel := m.upload.Selection(); sel != nil {
		m.logger.Info("file selected", "name", sel.File.Name, "type", sel.File.DeclaredType, "size", upload.FormatFileSize(sel.File.Size))
	}
}

func (m Model) startEditing() (Model, tea.Cmd) {
	m.editing = true
	if m.tab == TabLink {
		m.input.SetValue(m.link.URL())
		m.input.CursorEnd()
	} else {
		m.input.SetValue("")
	}
	cmd := m.input.Focus()
	return m, cmd
}

func (m *Model) resetInput() {
	m.input.SetValue("")
	if m.tab == TabUpload {
		m.input.Placeholder = "~/Videos/outfit.mp4"
	} else {
		m.input.Placeholder = "https://www.tiktok.com/@user/video/..."
	}
}

// switchTab changes the active flow. Leaving a tab clears results, the link
// and the analyzing flag; in-flight work for the old tab is abandoned.
func (m Model) switchTab(tab Tab) Model {
	if tab == m.tab {
		return m
	}
	m.tab = tab
	m.editing = false
	m.input.Blur()
	m.link.Reset()
	m.upload.Close()
	m.uploadSeq = 0
	m.clearResults()
	m.resetInput()
	return m
}

func (m *Model) clearResults() {
	m.products = nil
	m.loading = false
	m.analyzed = false
	m.demo = false
	m.selected = 0
	m.results.GotoTop()
}

func (m Model) analyze() (Model, tea.Cmd) {
	if m.tab == TabUpload {
		return m.startUpload()
	}
	return m.startLinkAnalysis()
}

func (m Model) startUpload() (Model, tea.Cmd) {
	job, ok := m.upload.BeginUpload()
	if !ok {
		if m.upload.Selection() == nil {
			m.toasts.Warning("Choose a video file before analyzing", "No File Selected")
		}
		return m, nil
	}
	m.uploadSeq = job.Seq
	m.clearResults()
	m.loading = true
	m.logger.Info("upload started", "name", job.File.Name, "size", job.File.Size)

	ctx, api := m.ctx, m.api
	return m, func() tea.Msg {
		if api == nil {
			return uploadDoneMsg{seq: job.Seq, err: errors.New("no backend configured")}
		}
		resp, err := job.Run(ctx, api)
		return uploadDoneMsg{seq: job.Seq, resp: resp, err: err}
	}
}

func (m Model) handleUploadDone(msg uploadDoneMsg) Model {
	if msg.seq != m.uploadSeq {
		return m
	}
	m.uploadSeq = 0
	m.loading = false
	products, ok := m.upload.FinishUpload(msg.seq, msg.resp, msg.err)
	if !ok {
		if msg.err != nil {
			m.logger.Warn("upload failed", "error", msg.err)
		}
		m.products = nil
		return m
	}
	m.logger.Info("upload analyzed", "products", len(products))
	m.products = products
	m.analyzed = true
	m.selected = 0
	return m
}

func (m Model) startLinkAnalysis() (Model, tea.Cmd) {
	seq, ok := m.link.BeginAnalyze()
	if !ok {
		if strings.TrimSpace(m.link.URL()) == "" {
			m.toasts.Warning("Paste a video link first", "No Link")
		}
		return m, nil
	}
	m.clearResults()
	m.loading = true
	url := m.link.URL()
	m.logger.Info("link analysis started", "url", url)

	ctx, analyzer := m.ctx, m.linkAnalyzer
	return m, func() tea.Msg {
		products, err := analyzer.AnalyzeURL(ctx, url)
		return linkDoneMsg{seq: seq, products: products, err: err}
	}
}

func (m Model) handleLinkDone(msg linkDoneMsg) Model {
	if !m.link.FinishAnalyze(msg.seq) {
		return m
	}
	m.loading = false
	m.analyzed = true
	m.demo = true
	m.selected = 0
	if msg.err != nil {
		m.logger.Warn("link analysis failed", "error", msg.err)
		m.products = nil
		return m
	}
	m.products = msg.products
	return m
}

func (m Model) openSimilar() (Model, tea.Cmd) {
	if m.loading || m.selected >= len(m.products) || m.lookup.IsOpen() {
		return m, nil
	}
	modal, cmd := newSimilarModal(m.ctx, m.lookup, m.toasts, m.logger, m.products[m.selected], m.selected)
	m.modal = modal
	return m, cmd
}

func (m Model) updateModal(msg tea.Msg) (Model, tea.Cmd) {
	next, cmd, done := m.modal.Update(msg, m.keys)
	if done {
		m.modal.Close()
		m.modal = nil
		return m, cmd
	}
	m.modal = next
	return m, cmd
}

// toastFrames starts the countdown animation when toasts are visible.
func (m *Model) toastFrames() tea.Cmd {
	if m.toastTicking || m.toasts.Len() == 0 {
		return nil
	}
	m.toastTicking = true
	return toastFrameCmd()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type toastFrameMsg time.Time

type toastsChangedMsg struct{}

type uploadDoneMsg struct {
	seq  int
	resp *backend.AnalyzeResponse
	err  error
}

type linkDoneMsg struct {
	seq      int
	products []backend.DetectedProduct
	err      error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func toastFrameCmd() tea.Cmd {
	return tea.Tick(ToastFrameInterval, func(t time.Time) tea.Msg {
		return toastFrameMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func ternaryTab(cond bool, a, b Tab) Tab {
	if cond {
		return a
	}
	return b
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	// Expiry timers fire off the UI goroutine; Send must not block them.
	m.toasts.SetOnChange(func() { go p.Send(toastsChangedMsg{}) })
	defer m.toasts.SetOnChange(nil)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
