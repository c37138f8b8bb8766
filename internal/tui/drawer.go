package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TomWang22/fin-news-summarizer/internal/saved"
)

// savedPageSize is the remote page size requested by the drawer.
const savedPageSize = 20

type drawerField int

const (
	drawerBrowse drawerField = iota
	drawerNaming
	drawerFiltering
)

type drawerModel struct {
	cursor int
	field  drawerField

	nameInput   textinput.Model
	filterInput textinput.Model
}

func newDrawerModel() drawerModel {
	name := textinput.New()
	name.Placeholder = "Name for this search"
	name.CharLimit = 80
	name.Prompt = ""

	filter := textinput.New()
	filter.Placeholder = "Filter by name"
	filter.CharLimit = 80
	filter.Prompt = ""

	return drawerModel{nameInput: name, filterInput: filter}
}

// clamp keeps the cursor inside a list of n entries after a reload.
func (d *drawerModel) clamp(n int) {
	if d.cursor >= n {
		d.cursor = n - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

func (a *App) updateDrawer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &a.drawer

	switch d.field {
	case drawerNaming:
		switch msg.String() {
		case "enter":
			d.field = drawerBrowse
			d.nameInput.Blur()
			return a, a.savedCreateCmd(d.nameInput.Value())
		case "esc":
			d.field = drawerBrowse
			d.nameInput.Blur()
			return a, nil
		}
		var cmd tea.Cmd
		d.nameInput, cmd = d.nameInput.Update(msg)
		return a, cmd

	case drawerFiltering:
		switch msg.String() {
		case "enter":
			d.field = drawerBrowse
			d.filterInput.Blur()
			return a, a.savedRefreshCmd(saved.ListOptions{NameFilter: d.filterInput.Value(), Limit: savedPageSize}, "")
		case "esc":
			d.field = drawerBrowse
			d.filterInput.Blur()
			return a, nil
		}
		var cmd tea.Cmd
		d.filterInput, cmd = d.filterInput.Update(msg)
		return a, cmd
	}

	items := a.mgr.Items()

	switch msg.String() {
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(items)-1 {
			d.cursor++
		}
	case "enter":
		if d.cursor < len(items) {
			a.state.ApplyParams(items[d.cursor].Params)
			a.form.syncFromState()
			return a, a.startSearch()
		}
	case "a":
		d.field = drawerNaming
		d.nameInput.SetValue(a.state.DefaultSaveName())
		d.nameInput.Focus()
		d.nameInput.CursorEnd()
	case "d":
		if d.cursor < len(items) {
			return a, a.savedDeleteCmd(items[d.cursor].ID, items[d.cursor].Name)
		}
	case "y":
		return a, a.savedSyncCmd(!a.mgr.SyncServer())
	case "m":
		if a.mgr.HasMore() {
			return a, a.savedLoadMoreCmd()
		}
	case "/":
		d.field = drawerFiltering
		d.filterInput.Focus()
		d.filterInput.CursorEnd()
	case "c":
		return a, a.savedClearCmd()
	case "v", "esc", "f":
		a.mode = modeForm
	case "g":
		return a, a.switchMode(modeDiag)
	case "?":
		return a, a.switchMode(modeHelp)
	case "q", "ctrl+c":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) savedCreateCmd(name string) tea.Cmd {
	a.savedBusy = true
	mgr := a.mgr
	params := a.state.ParamsForSave()
	return func() tea.Msg {
		entry, err := mgr.Create(context.Background(), name, params)
		if err != nil {
			return savedRefreshedMsg{err: err}
		}
		return savedRefreshedMsg{notice: "Saved “" + entry.Name + "”"}
	}
}

func (a *App) savedDeleteCmd(id, name string) tea.Cmd {
	a.savedBusy = true
	mgr := a.mgr
	return func() tea.Msg {
		if err := mgr.Delete(context.Background(), id); err != nil {
			return savedRefreshedMsg{err: err}
		}
		return savedRefreshedMsg{notice: "Deleted “" + name + "”"}
	}
}

func (a *App) savedSyncCmd(server bool) tea.Cmd {
	a.savedBusy = true
	mgr := a.mgr
	return func() tea.Msg {
		if err := mgr.SetSync(context.Background(), server); err != nil {
			return savedRefreshedMsg{err: err}
		}
		if server {
			return savedRefreshedMsg{notice: "Syncing with server"}
		}
		return savedRefreshedMsg{notice: "Saving on this device"}
	}
}

func (a *App) savedLoadMoreCmd() tea.Cmd {
	a.savedBusy = true
	mgr := a.mgr
	return func() tea.Msg {
		if _, err := mgr.LoadMore(context.Background()); err != nil {
			return savedRefreshedMsg{err: err}
		}
		return savedRefreshedMsg{}
	}
}

func (a *App) savedClearCmd() tea.Cmd {
	a.savedBusy = true
	mgr := a.mgr
	return func() tea.Msg {
		if err := mgr.ClearLocal(context.Background()); err != nil {
			return savedRefreshedMsg{err: err}
		}
		return savedRefreshedMsg{notice: "Cleared device searches"}
	}
}

func (a *App) viewDrawer() string {
	d := &a.drawer
	items := a.mgr.Items()

	var b strings.Builder
	b.WriteString("\n")

	realm := "this device"
	if a.mgr.SyncServer() {
		realm = "server"
	}
	b.WriteString("  " + itemTitleStyle.Render("Saved searches") +
		dimStyle.Render("  ·  "+realm) + "\n\n")

	switch d.field {
	case drawerNaming:
		b.WriteString("  " + promptStyle.Render("Save as: ") + d.nameInput.View() + "\n\n")
	case drawerFiltering:
		b.WriteString("  " + promptStyle.Render("Filter: ") + d.filterInput.View() + "\n\n")
	default:
		if f := d.filterInput.Value(); f != "" {
			b.WriteString(dimStyle.Render("  filter: "+f) + "\n\n")
		}
	}

	if len(items) == 0 {
		b.WriteString(dimStyle.Render("  No saved searches yet. Press a to save the current one.") + "\n")
	}

	for i, e := range items {
		prefix := "  "
		name := fieldValueStyle.Render(e.Name)
		if i == d.cursor && d.field == drawerBrowse {
			prefix = itemSelectedStyle.Render("› ")
			name = itemSelectedStyle.Render(e.Name)
		}
		tag := "local"
		if saved.IsRemoteID(e.ID) {
			tag = "server"
		}
		line := prefix + name + dimStyle.Render(fmt.Sprintf("  %s · %s · %d results", e.Params.Provider, tag, e.Params.Limit))
		b.WriteString(line + "\n")
	}

	if a.mgr.HasMore() {
		b.WriteString("\n" + dimStyle.Render("  m: load more") + "\n")
	}

	return paneActiveStyle.Width(a.width - 2).Render(b.String())
}
