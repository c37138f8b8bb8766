package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TomWang22/fin-news-summarizer/internal/search"
)

func (a *App) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.view)-1 {
			a.cursor++
		}
	case "enter", "o":
		a.openSelected()
	case "e":
		if len(a.view) == 0 {
			a.notices.Push("Nothing to export")
			return a, tickCmd()
		}
		return a, a.exportCmd()
	case "l":
		a.shareLink()
		return a, tickCmd()
	case "s":
		a.state.SortBy = cycleSort(a.state.SortBy, 1)
		a.refreshView()
	case "n":
		a.state.HideNeutral = !a.state.HideNeutral
		a.refreshView()
	case "f", "esc":
		a.mode = modeForm
	case "v":
		return a, a.switchMode(modeSaved)
	case "g":
		return a, a.switchMode(modeDiag)
	case "?":
		return a, a.switchMode(modeHelp)
	case "q", "ctrl+c":
		return a, tea.Quit
	}
	return a, nil
}

// sentimentMarker picks the glyph and style for a score. The neutral band
// matches the hide-neutral filter.
func sentimentMarker(a search.Article) string {
	s := a.SentimentOr(0)
	switch {
	case s > 0.1:
		return bullStyle.Render(fmt.Sprintf("▲ %+.2f", s))
	case s < -0.1:
		return bearStyle.Render(fmt.Sprintf("▼ %+.2f", s))
	default:
		return flatStyle.Render(fmt.Sprintf("• %+.2f", s))
	}
}

func (a *App) viewResults() string {
	var b strings.Builder
	b.WriteString("\n")

	if a.data == nil {
		b.WriteString(dimStyle.Render("  No search yet. Press f for the search form.") + "\n")
		return paneStyle.Width(a.width - 2).Render(b.String())
	}

	shown := len(a.view)
	total := len(a.data.Articles)
	head := fmt.Sprintf("  %d article(s)", total)
	if shown != total {
		head = fmt.Sprintf("  %d of %d article(s)", shown, total)
	}
	head += dimStyle.Render(fmt.Sprintf("  ·  %s  ·  sort: %s", a.data.Provider, a.state.SortBy))
	if a.fallback {
		head += "  " + noticeStyle.Render("domain fallback")
	}
	b.WriteString(head + "\n\n")

	if shown == 0 {
		b.WriteString(dimStyle.Render("  No articles match. Try broad mode or fewer filters.") + "\n")
	}

	for i, art := range a.view {
		prefix := "  "
		title := itemTitleStyle.Render(art.Title)
		if i == a.cursor {
			prefix = itemSelectedStyle.Render("› ")
			title = itemSelectedStyle.Render(art.Title)
		}
		meta := itemSourceStyle.Render(art.Source)
		if art.PublishedAt != "" {
			meta += itemTimeStyle.Render("  " + art.PublishedAt)
		}
		b.WriteString(prefix + title + "\n")
		b.WriteString("    " + sentimentMarker(art) + "  " + meta + "\n")
		if art.Summary != "" {
			b.WriteString("    " + summaryStyle.Render(truncate(art.Summary, a.width-8)) + "\n")
		}
		b.WriteString("\n")
	}

	return paneStyle.Width(a.width - 2).Render(b.String())
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
