package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TomWang22/fin-news-summarizer/internal/notify"
)

func (a *App) renderStatusBar() string {
	var left string
	switch {
	case a.searching:
		left = a.spinner.View() + " searching..."
	case a.savedBusy:
		left = a.spinner.View() + " saved searches..."
	case a.data != nil:
		left = fmt.Sprintf("%d/%d shown · %s", len(a.view), len(a.data.Articles), a.data.Provider)
	default:
		left = a.state.Provider
	}

	var middle string
	if notices := a.notices.Active(); len(notices) > 0 {
		last := notices[len(notices)-1]
		if last.Kind == notify.Error {
			middle = errorStyle.Render(last.Text)
		} else {
			middle = noticeStyle.Render(last.Text)
		}
	} else if a.err != "" && a.mode != modeResults {
		middle = errorStyle.Render(a.err)
	}

	right := "? help · q quit"

	bar := left
	if middle != "" {
		bar += "  " + middle
	}
	pad := a.width - lipgloss.Width(bar) - lipgloss.Width(right) - 2
	if pad < 1 {
		pad = 1
	}
	bar += strings.Repeat(" ", pad) + right

	return statusBarStyle.Width(a.width).Render(bar)
}
