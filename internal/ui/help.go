package ui

import (
	"strings"

	"subgrid/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, mode model.Mode, width int) string {
	if mode == model.ModeInsert {
		return renderBindings(DefaultFormKeyMap().ShortHelp(), width)
	}

	switch screen {
	case model.ScreenFilter:
		return renderBindings(DefaultFilterKeyMap().ShortHelp(), width)
	default:
		return renderBindings(DefaultKeyMap().ShortHelp(), width)
	}
}

func renderBindings(bindings []key.Binding, width int) string {
	keys := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		keys = append(keys, helpKey(h.Key, h.Desc))
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	h := help.New()
	h.Styles.FullKey = HelpKeyStyle
	h.Styles.FullDesc = HelpDescStyle
	h.Styles.FullSeparator = HelpDescStyle

	sections := []string{
		titleSection("Grid"),
		h.FullHelpView(DefaultKeyMap().FullHelp()),
		titleSection("Filter menu"),
		h.FullHelpView(DefaultFilterKeyMap().FullHelp()),
		titleSection("Detail form"),
		h.FullHelpView(DefaultFormKeyMap().FullHelp()),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(helpKey("esc", "close help")),
	)
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}
