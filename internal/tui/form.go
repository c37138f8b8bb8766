package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TomWang22/fin-news-summarizer/internal/query"
	"github.com/TomWang22/fin-news-summarizer/internal/search"
	"github.com/TomWang22/fin-news-summarizer/internal/sources"
)

type formField int

const (
	fieldQuery formField = iota
	fieldProvider
	fieldLimit
	fieldSentences
	fieldSort
	fieldBroad
	fieldHideNeutral
	fieldDateFrom
	fieldDateTo
	fieldQuality
	fieldDomains
	fieldCount
)

// newsapiOnly fields are skipped while the rss provider is selected.
func (f formField) newsapiOnly() bool {
	return f >= fieldDateFrom && f <= fieldDomains
}

type formModel struct {
	state *search.State
	focus formField

	query    textinput.Model
	dateFrom textinput.Model
	dateTo   textinput.Model
	domains  textinput.Model

	presetIdx     int
	datePresetIdx int
}

func newFormModel(st *search.State) formModel {
	mk := func(placeholder string, value string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.SetValue(value)
		ti.CharLimit = limit
		ti.Prompt = ""
		return ti
	}

	f := formModel{
		state:    st,
		query:    mk("Tickers or keywords", st.Query, 200),
		dateFrom: mk("YYYY-MM-DD", st.DateFrom, 10),
		dateTo:   mk("YYYY-MM-DD", st.DateTo, 10),
		domains:  mk("Custom domains (comma separated)", st.Domains, 200),
	}
	f.query.Focus()
	return f
}

// syncFromState refreshes the inputs after a saved search or shared link
// repopulates the state.
func (f *formModel) syncFromState() {
	f.query.SetValue(f.state.Query)
	f.dateFrom.SetValue(f.state.DateFrom)
	f.dateTo.SetValue(f.state.DateTo)
	f.domains.SetValue(f.state.Domains)
}

func (f *formModel) commit() {
	f.state.Query = f.query.Value()
	f.state.DateFrom = f.dateFrom.Value()
	f.state.DateTo = f.dateTo.Value()
	f.state.Domains = f.domains.Value()
}

func (f *formModel) activeInput() *textinput.Model {
	switch f.focus {
	case fieldQuery:
		return &f.query
	case fieldDateFrom:
		return &f.dateFrom
	case fieldDateTo:
		return &f.dateTo
	case fieldDomains:
		return &f.domains
	}
	return nil
}

func (f *formModel) setFocus(target formField) {
	if in := f.activeInput(); in != nil {
		in.Blur()
	}
	f.focus = target
	if in := f.activeInput(); in != nil {
		in.Focus()
	}
}

func (f *formModel) move(delta int) {
	next := f.focus
	for {
		next = (next + formField(delta) + fieldCount) % fieldCount
		if next.newsapiOnly() && f.state.Provider != search.ProviderNewsAPI {
			continue
		}
		break
	}
	f.setFocus(next)
}

// adjust tweaks the focused non-text field by delta.
func (f *formModel) adjust(delta int) {
	st := f.state
	switch f.focus {
	case fieldProvider:
		if st.Provider == search.ProviderRSS {
			st.Provider = search.ProviderNewsAPI
		} else {
			st.Provider = search.ProviderRSS
		}
	case fieldLimit:
		st.Limit = clamp(st.Limit+delta, 1, 50)
	case fieldSentences:
		st.Sentences = clamp(st.Sentences+delta, 1, 6)
	case fieldSort:
		st.SortBy = cycleSort(st.SortBy, delta)
	case fieldBroad:
		st.Broad = !st.Broad
	case fieldHideNeutral:
		st.HideNeutral = !st.HideNeutral
	case fieldQuality:
		st.Quality = cycleQuality(st.Quality, delta)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var sortModes = []string{search.SortRelevance, search.SortSentimentDesc, search.SortTimeDesc}

func cycleSort(current string, delta int) string {
	idx := 0
	for i, m := range sortModes {
		if m == current {
			idx = i
		}
	}
	return sortModes[(idx+delta+len(sortModes))%len(sortModes)]
}

func cycleQuality(current sources.Config, delta int) sources.Config {
	labels := sources.Labels()
	idx := 0
	for i, l := range labels {
		if l == current.Label {
			idx = i
		}
	}
	return sources.ByLabel(labels[(idx+delta+len(labels))%len(labels)])
}

func (a *App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &a.form

	switch msg.String() {
	case "tab", "down":
		f.commit()
		f.move(1)
		return a, nil
	case "shift+tab", "up":
		f.commit()
		f.move(-1)
		return a, nil
	case "enter":
		f.commit()
		a.refreshView()
		return a, a.startSearch()
	case "ctrl+c":
		return a, tea.Quit
	}

	if in := f.activeInput(); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		f.commit()
		return a, cmd
	}

	switch msg.String() {
	case "left":
		f.adjust(-1)
		a.refreshView()
	case "right", " ":
		f.adjust(1)
		a.refreshView()
	case "p":
		names := query.PresetNames()
		f.presetIdx = (f.presetIdx + 1) % len(names)
		a.state.Query = query.Presets[names[f.presetIdx]]
		f.query.SetValue(a.state.Query)
		a.notices.Push("Preset: " + names[f.presetIdx])
		return a, tickCmd()
	case "d":
		if a.state.Provider == search.ProviderNewsAPI {
			f.datePresetIdx = (f.datePresetIdx + 1) % len(search.DatePresets)
			p := search.DatePresets[f.datePresetIdx]
			a.state.DateFrom, a.state.DateTo = p.Range(time.Now())
			f.dateFrom.SetValue(a.state.DateFrom)
			f.dateTo.SetValue(a.state.DateTo)
			a.notices.Push("Date range: " + p.Name)
			return a, tickCmd()
		}
	case "x":
		a.state.ClearFilters()
		f.syncFromState()
		a.notices.Push("Cleared NewsAPI filters")
		return a, tickCmd()
	case "r":
		a.mode = modeResults
	case "v":
		return a, a.switchMode(modeSaved)
	case "g":
		return a, a.switchMode(modeDiag)
	case "l":
		a.shareLink()
		return a, tickCmd()
	case "?":
		return a, a.switchMode(modeHelp)
	case "q", "esc":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) viewForm() string {
	f := &a.form
	st := a.state

	row := func(field formField, label, value string) string {
		l := fieldLabelStyle.Render(fmt.Sprintf("%-14s", label))
		if f.focus == field {
			return "  " + fieldFocusedStyle.Render("› ") + l + value
		}
		return "    " + l + value
	}
	onOff := func(v bool) string {
		if v {
			return bullStyle.Render("on")
		}
		return flatStyle.Render("off")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(row(fieldQuery, "Query", f.query.View()) + "\n")
	b.WriteString(row(fieldProvider, "Provider", fieldValueStyle.Render(st.Provider)) + "\n")
	b.WriteString(row(fieldLimit, "Limit", fieldValueStyle.Render(fmt.Sprintf("%d", st.Limit))) + "\n")
	b.WriteString(row(fieldSentences, "Sentences", fieldValueStyle.Render(fmt.Sprintf("%d", st.Sentences))) + "\n")
	b.WriteString(row(fieldSort, "Sort", fieldValueStyle.Render(st.SortBy)) + "\n")
	b.WriteString(row(fieldBroad, "Broad mode", onOff(st.Broad)) + "\n")
	b.WriteString(row(fieldHideNeutral, "Hide neutral", onOff(st.HideNeutral)) + "\n")

	if st.Provider == search.ProviderNewsAPI {
		b.WriteString("\n" + dimStyle.Render("  NewsAPI filters") + "\n")
		b.WriteString(row(fieldDateFrom, "From", f.dateFrom.View()) + "\n")
		b.WriteString(row(fieldDateTo, "To", f.dateTo.View()) + "\n")
		b.WriteString(row(fieldQuality, "Quality source", fieldValueStyle.Render(st.Quality.Label)) + "\n")
		b.WriteString(row(fieldDomains, "Domains", f.domains.View()) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("  Query sent: “"+query.Build(st.Query, st.Provider, st.Broad)+"”") + "\n")

	return paneActiveStyle.Width(a.width - 2).Render(b.String())
}
