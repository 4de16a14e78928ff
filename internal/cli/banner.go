package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kolkov/elvas"
)

const bannerWidth = 60

var hashBorder = lipgloss.Border{
	Top:         "#",
	Bottom:      "#",
	Left:        "#",
	Right:       "#",
	TopLeft:     "#",
	TopRight:    "#",
	BottomLeft:  "#",
	BottomRight: "#",
}

var bannerStyle = lipgloss.NewStyle().
	Border(hashBorder).
	Width(bannerWidth - 2).
	Align(lipgloss.Center)

func bannerLines() []string {
	return []string{
		"",
		"",
		"ELVAS",
		"----------------------------",
		"Go Package for",
		"ELectroweak VAcuum Stability",
		"(version " + elvas.Version + ")",
		"",
		"- Authors -",
		"S. Chigusa, T. Moroi, Y. Shoji",
		"",
		"For more details, see",
		"https://github.com/YShoji-HEP/ELVAS",
		"",
		"Phys.Rev.Lett. 119 (2017) no.21, 211801",
		"Phys. Rev. D 97, 116012 (2018)",
		"arXiv: 2406.05180 [hep-ph]",
		"",
		"",
	}
}

// writeBanner writes the header box.
func writeBanner(w io.Writer) error {
	_, err := io.WriteString(w, bannerStyle.Render(strings.Join(bannerLines(), "\n"))+"\n")
	return err
}
