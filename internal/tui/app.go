package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TomWang22/fin-news-summarizer/internal/api"
	"github.com/TomWang22/fin-news-summarizer/internal/browser"
	"github.com/TomWang22/fin-news-summarizer/internal/config"
	"github.com/TomWang22/fin-news-summarizer/internal/csvexport"
	"github.com/TomWang22/fin-news-summarizer/internal/notify"
	"github.com/TomWang22/fin-news-summarizer/internal/saved"
	"github.com/TomWang22/fin-news-summarizer/internal/search"
	"github.com/TomWang22/fin-news-summarizer/internal/update"
	"github.com/TomWang22/fin-news-summarizer/internal/urlstate"
)

type mode int

const (
	modeForm mode = iota
	modeResults
	modeSaved
	modeDiag
	modeHelp
)

// App is the dashboard model. A single mutable result set and a single saved
// list live here; async completions land as messages and the last accepted
// sequence number wins.
type App struct {
	version string
	cfg     *config.Config
	client  *api.Client
	orch    *search.Orchestrator
	mgr     *saved.Manager
	notices *notify.Queue

	state    search.State
	data     *search.Response
	view     []search.Article
	fallback bool

	mode     mode
	prevMode mode

	width  int
	height int

	spinner   spinner.Model
	searching bool
	// lastSeq is the newest issued search; acceptedSeq the newest applied.
	// Responses at or below acceptedSeq are stale and dropped.
	lastSeq     int
	acceptedSeq int

	form   formModel
	cursor int

	drawer    drawerModel
	diag      diagModel
	savedBusy bool

	err string
}

// Options configure a dashboard run.
type Options struct {
	Cfg     *config.Config
	Client  *api.Client
	Manager *saved.Manager
	Notices *notify.Queue
	Initial search.State
	// AutoSearch runs the initial state immediately (shared links).
	AutoSearch bool
	// Version enables the background new-release check when set.
	Version string
}

func NewApp(opts Options) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	a := &App{
		version: opts.Version,
		cfg:     opts.Cfg,
		client:  opts.Client,
		orch:    search.NewOrchestrator(opts.Client),
		mgr:     opts.Manager,
		notices: opts.Notices,
		state:   opts.Initial,
		spinner: sp,
		mode:    modeForm,
	}
	a.form = newFormModel(&a.state)
	a.drawer = newDrawerModel()
	a.diag = newDiagModel()
	if opts.AutoSearch {
		a.searching = true
	}
	return a
}

// Run launches the dashboard and blocks until quit.
func Run(opts Options) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick, a.savedInitCmd()}
	if a.version != "" && a.version != "dev" {
		cmds = append(cmds, a.updateCheckCmd())
	}
	if a.searching {
		a.searching = false
		if cmd := a.startSearch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if !a.searching && !a.savedBusy && !a.diag.running {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tickMsg:
		if len(a.notices.Active()) > 0 {
			return a, tickCmd()
		}
		return a, nil

	case searchDoneMsg:
		if msg.seq <= a.acceptedSeq {
			return a, nil
		}
		a.acceptedSeq = msg.seq
		if msg.seq == a.lastSeq {
			a.searching = false
		}
		a.data = msg.outcome.Response
		a.fallback = msg.outcome.Fallback
		a.err = ""
		a.cursor = 0
		a.refreshView()
		if msg.outcome.Fallback {
			a.notices.Push("Retried with domain fallback")
		}
		a.mode = modeResults
		return a, tickCmd()

	case searchErrMsg:
		if msg.seq != a.lastSeq {
			return a, nil
		}
		a.searching = false
		a.err = msg.err.Error()
		a.notices.PushError(a.err)
		return a, tickCmd()

	case savedRefreshedMsg:
		a.savedBusy = false
		if msg.err != nil {
			a.notices.PushError(msg.err.Error())
		} else if msg.notice != "" {
			a.notices.Push(msg.notice)
		}
		a.drawer.clamp(len(a.mgr.Items()))
		return a, tickCmd()

	case diagDoneMsg:
		a.diag.running = false
		if msg.err != nil {
			a.diag.err = msg.err.Error()
		} else {
			a.diag.err = ""
			a.diag.result = msg.result
		}
		return a, nil

	case exportDoneMsg:
		if msg.err != nil {
			a.notices.PushError("Export failed: " + msg.err.Error())
		} else {
			a.notices.Push(fmt.Sprintf("Exported %d article(s) to %s", msg.count, msg.filename))
		}
		return a, tickCmd()

	case updateMsg:
		if msg.latest != "" {
			a.notices.Push("Update available: v" + msg.latest)
			return a, tickCmd()
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text entry swallows everything except esc/enter handled per mode.
	switch a.mode {
	case modeForm:
		return a.updateForm(msg)
	case modeResults:
		return a.updateResults(msg)
	case modeSaved:
		return a.updateDrawer(msg)
	case modeDiag:
		return a.updateDiag(msg)
	case modeHelp:
		switch msg.String() {
		case "q", "esc", "?":
			a.mode = a.prevMode
		}
		return a, nil
	}
	return a, nil
}

// switchMode moves between panes, remembering where help was opened from.
func (a *App) switchMode(m mode) tea.Cmd {
	if m == modeHelp {
		a.prevMode = a.mode
	}
	a.mode = m
	if m == modeSaved && !a.savedBusy {
		return a.savedRefreshCmd(saved.ListOptions{NameFilter: a.drawer.filterInput.Value(), Limit: savedPageSize}, "")
	}
	return nil
}

func (a *App) refreshView() {
	if a.data == nil {
		a.view = nil
		return
	}
	a.view = search.View(a.data.Articles, a.state.SortBy, a.state.HideNeutral)
	if a.cursor >= len(a.view) {
		a.cursor = 0
	}
}

// startSearch issues an assembled search as a command. Sequencing means a
// slow stale response can never overwrite a newer accepted one.
func (a *App) startSearch() tea.Cmd {
	if !a.state.CanSearch() {
		a.notices.PushError("Enter a query first")
		return tickCmd()
	}
	a.searching = true
	a.lastSeq++
	seq := a.lastSeq
	st := a.state
	orch := a.orch
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		out, err := orch.Execute(context.Background(), st)
		if err != nil {
			return searchErrMsg{seq: seq, err: err}
		}
		return searchDoneMsg{seq: seq, outcome: out}
	})
}

func (a *App) updateCheckCmd() tea.Cmd {
	version := a.version
	return func() tea.Msg {
		if r := update.Check(context.Background(), version); r != nil {
			return updateMsg{latest: r.LatestVersion}
		}
		return updateMsg{}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) savedInitCmd() tea.Cmd {
	a.savedBusy = true
	mgr := a.mgr
	return func() tea.Msg {
		if err := mgr.Init(context.Background()); err != nil {
			return savedRefreshedMsg{err: err}
		}
		return savedRefreshedMsg{}
	}
}

func (a *App) savedRefreshCmd(opts saved.ListOptions, notice string) tea.Cmd {
	a.savedBusy = true
	mgr := a.mgr
	return func() tea.Msg {
		if err := mgr.Refresh(context.Background(), opts); err != nil {
			return savedRefreshedMsg{err: err}
		}
		return savedRefreshedMsg{notice: notice}
	}
}

func (a *App) exportCmd() tea.Cmd {
	view := a.view
	return func() tea.Msg {
		f, err := os.Create(csvexport.DefaultFilename)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer f.Close()
		if err := csvexport.Write(f, view); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{filename: csvexport.DefaultFilename, count: len(view)}
	}
}

func (a *App) openSelected() {
	if a.cursor < len(a.view) {
		if err := browser.Open(a.view[a.cursor].URL); err != nil {
			a.notices.PushError(err.Error())
		}
	}
}

func (a *App) shareLink() {
	link := "finnews --from-url '?" + urlstate.Encode(a.state).Encode() + "'"
	a.notices.Push(link)
}

func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}

	header := headerStyle.Render("finnews") +
		dimStyle.Render("  financial news search · "+a.client.BaseURL())

	var body string
	switch a.mode {
	case modeForm:
		body = a.viewForm()
	case modeResults:
		body = a.viewResults()
	case modeSaved:
		body = a.viewDrawer()
	case modeDiag:
		body = a.viewDiag()
	case modeHelp:
		body = a.viewHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		a.renderStatusBar(),
	)
}

func (a *App) viewHelp() string {
	help := `
  finnews keys

  form        enter search · tab/shift+tab move · ←/→ adjust · p presets
              d date range · x clear filters
  results     ↑/↓ move · o open in browser · e export csv · l share link
              s sort mode · n hide neutral · f back to form
  saved       ↑/↓ move · enter load · a save current · d delete · y sync
              m load more · / filter · c clear local
  diag        enter run probe · i edit items
  anywhere    v saved · g diagnostics · ? help · q quit
`
	return paneStyle.Width(a.width - 2).Render(help)
}
