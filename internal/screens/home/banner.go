package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mora/internal/ui/theme"
)

// Block-letter title for terminals wide enough to fit it.
const bannerFull = ` ███╗   ███╗ ██████╗ ██████╗  █████╗
 ████╗ ████║██╔═══██╗██╔══██╗██╔══██╗
 ██╔████╔██║██║   ██║██████╔╝███████║
 ██║╚██╔╝██║██║   ██║██╔══██╗██╔══██║
 ██║ ╚═╝ ██║╚██████╔╝██║  ██║██║  ██║
 ╚═╝     ╚═╝ ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝`

const bannerCompact = "M · O · R · A"

// bannerWidth is the rendered width of bannerFull.
const bannerWidth = 38

// renderBanner returns the title art centered in width, dropping to
// the compact form when the full art doesn't fit.
func renderBanner(width, height int) string {
	art := bannerFull
	if width < bannerWidth+2 || height < 18 {
		art = bannerCompact
	}

	styled := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(art)

	var b strings.Builder
	for i, line := range strings.Split(styled, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
	}
	return b.String()
}
