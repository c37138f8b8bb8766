package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TomWang22/fin-news-summarizer/internal/api"
)

// defaultProbeItems is a starter mix of NewsAPI source IDs and domains.
const defaultProbeItems = "reuters,bloomberg,financial-times,the-wall-street-journal," +
	"cnbc,marketwatch,yahoo-finance,business-insider," +
	"reuters.com,bloomberg.com,wsj.com,ft.com"

type diagModel struct {
	itemsInput textinput.Model
	editing    bool

	running bool
	result  *api.DiagResult
	err     string
}

func newDiagModel() diagModel {
	items := textinput.New()
	items.Placeholder = "source IDs or domains, comma separated"
	items.SetValue(defaultProbeItems)
	items.CharLimit = 500
	items.Prompt = ""
	return diagModel{itemsInput: items}
}

func (a *App) updateDiag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &a.diag

	if d.editing {
		switch msg.String() {
		case "enter", "esc":
			d.editing = false
			d.itemsInput.Blur()
			return a, nil
		}
		var cmd tea.Cmd
		d.itemsInput, cmd = d.itemsInput.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "enter":
		if !d.running {
			return a, a.diagCmd()
		}
	case "i":
		d.editing = true
		d.itemsInput.Focus()
		d.itemsInput.CursorEnd()
	case "f", "esc":
		a.mode = modeForm
	case "v":
		return a, a.switchMode(modeSaved)
	case "?":
		return a, a.switchMode(modeHelp)
	case "q", "ctrl+c":
		return a, tea.Quit
	}
	return a, nil
}

// diagCmd probes with the form's current date range, same as a search would.
func (a *App) diagCmd() tea.Cmd {
	a.diag.running = true
	client := a.client
	opts := api.ProbeOpts{
		Items:    a.diag.itemsInput.Value(),
		DateFrom: a.state.DateFrom,
		DateTo:   a.state.DateTo,
		Limit:    1,
	}
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		result, err := client.ProbeSources(context.Background(), opts)
		return diagDoneMsg{result: result, err: err}
	})
}

func (a *App) viewDiag() string {
	d := &a.diag

	var b strings.Builder
	b.WriteString("\n  " + itemTitleStyle.Render("Source check (NewsAPI)") + "\n\n")
	b.WriteString(dimStyle.Render("  Source IDs (reuters) or domains (reuters.com). IDs are tried first.") + "\n\n")

	if d.editing {
		b.WriteString("  " + promptStyle.Render("Items: ") + d.itemsInput.View() + "\n")
	} else {
		b.WriteString("  " + fieldLabelStyle.Render("Items: ") + fieldValueStyle.Render(d.itemsInput.Value()) + "\n")
	}

	if a.state.DateFrom != "" || a.state.DateTo != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  Date range: %s → %s", orDots(a.state.DateFrom), orDots(a.state.DateTo))) + "\n")
	} else {
		b.WriteString(dimStyle.Render("  No date filter") + "\n")
	}
	b.WriteString("\n")

	switch {
	case d.running:
		b.WriteString("  " + a.spinner.View() + " probing...\n")
	case d.err != "":
		b.WriteString("  " + errorStyle.Render(d.err) + "\n")
	case d.result != nil:
		b.WriteString("  " + fieldLabelStyle.Render(fmt.Sprintf("%-28s %s", "item", "hits")) + "\n")
		for _, item := range d.result.Tested {
			hits := d.result.Results[item]
			line := fmt.Sprintf("  %-28s %d", item, hits)
			if hits > 0 {
				b.WriteString(bullStyle.Render(line) + "\n")
			} else {
				b.WriteString(flatStyle.Render(line) + "\n")
			}
		}
	default:
		b.WriteString(dimStyle.Render("  enter: run probe · i: edit items") + "\n")
	}

	return paneActiveStyle.Width(a.width - 2).Render(b.String())
}

func orDots(s string) string {
	if s == "" {
		return "…"
	}
	return s
}
