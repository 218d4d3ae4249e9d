package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/mixcrew/mixcrew/internal/chart"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	collabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// staleMarker flags tracks older than the stale horizon.
const staleMarker = " 🕸"

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	switch m.screen {
	case screenLogin:
		b.WriteString(m.viewLogin())
	case screenPlaylists:
		b.WriteString(m.viewPlaylists())
	case screenChart:
		b.WriteString(m.viewChart())
	}

	if m.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errorMsg))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) viewLogin() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("mixcrew"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Who really runs your collaborative playlists?"))
	b.WriteString("\n\n")

	if m.loggingIn {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(statusStyle.Render(m.statusMsg))
		b.WriteString("\n")
	} else {
		b.WriteString("Press ")
		b.WriteString(cursorStyle.Render("enter"))
		b.WriteString(" to log in with Spotify.\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: login • q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) viewPlaylists() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Playlists"))
	b.WriteString("\n\n")

	switch {
	case m.loadingPlaylists:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading playlists...\n")
	case len(m.playlists) == 0:
		b.WriteString(dimStyle.Render("No playlists found."))
		b.WriteString("\n")
	default:
		for i, p := range m.playlists {
			prefix := "  "
			if i == m.cursor {
				prefix = cursorStyle.Render("> ")
			}

			label := "solo"
			style := dimStyle
			if p.Collaborative {
				label = "collab"
				style = collabStyle
			}

			line := fmt.Sprintf("%s%s %s %s",
				prefix,
				truncate(p.Name, 50),
				style.Render("["+label+"]"),
				dimStyle.Render(fmt.Sprintf("%d tracks", p.TrackTotal)),
			)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k: move • enter: open • r: reload • q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) viewChart() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.playlistName))
	b.WriteString("\n\n")

	if m.loadingChart || m.info == nil {
		if m.loadingChart {
			b.WriteString(m.spinner.View())
			b.WriteString(" Building chart...\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc: back • q: back • ctrl+c: quit"))
		b.WriteString("\n")
		return b.String()
	}

	info := m.info
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s across %d tracks from %d contributors",
		formatTotal(info.TotalDuration), len(info.Tracks), len(info.Users))))
	b.WriteString("\n\n")

	barWidth := m.width - 2
	if barWidth < 10 {
		barWidth = 60
	}
	b.WriteString(renderBar(info.Users, barWidth))
	b.WriteString("\n\n")

	b.WriteString(m.renderSections(info))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k: scroll • r: refresh • esc: back • ctrl+c: quit"))
	b.WriteString("\n")
	return b.String()
}

// renderSections renders one section per contributor, tracks beneath, with a
// simple line-based scroll window.
func (m *Model) renderSections(info *chart.PlaylistInfo) string {
	var lines []string

	offset := 0
	for _, u := range info.Users {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(u.Color)).Render("■")
		header := fmt.Sprintf("%s %s  %s",
			swatch,
			lipgloss.NewStyle().Bold(true).Render(truncate(u.Name, 30)),
			dimStyle.Render(fmt.Sprintf("%d tracks • %s • %.1f%%",
				u.TrackCount, formatTotal(u.TotalDuration), u.RelativeSize*100)),
		)
		lines = append(lines, header)

		for _, t := range info.Tracks[offset : offset+u.TrackCount] {
			lines = append(lines, m.renderTrack(t))
		}
		offset += u.TrackCount
		lines = append(lines, "")
	}

	// Clamp the scroll so the window never runs past the end.
	window := m.trackWindowHeight()
	maxScroll := len(lines) - window
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}

	end := m.scroll + window
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[m.scroll:end], "\n") + "\n"
}

// trackWindowHeight is how many section lines fit under the header and bar.
func (m *Model) trackWindowHeight() int {
	reserved := 9 // title, summary, bar, surrounding blanks, help line
	h := m.height - reserved
	if h < 5 {
		return 20
	}
	return h
}

func (m *Model) renderTrack(t chart.TrackInfo) string {
	name := truncate(t.Name, 44)
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(agedColor(t.Color, t.AgeFactor)))

	added := ""
	if !t.AddedAt.IsZero() {
		added = dimStyle.Render("added " + humanize.Time(t.AddedAt))
	}

	line := fmt.Sprintf("    %7s  %s  %s",
		formatTrackDuration(t.Duration),
		nameStyle.Render(runewidth.FillRight(name, 44)),
		added,
	)
	if t.Stale() {
		line += staleMarker
	}
	return line
}

// renderBar draws one horizontal bar, one colored segment per contributor,
// widths proportional to relative size.
func renderBar(users []chart.UserInfo, width int) string {
	widths := segmentWidths(users, width)

	var b strings.Builder
	for i, u := range users {
		if widths[i] == 0 {
			continue
		}
		seg := lipgloss.NewStyle().
			Background(lipgloss.Color(u.Color)).
			Render(strings.Repeat(" ", widths[i]))
		b.WriteString(seg)
	}
	return b.String()
}

// segmentWidths distributes width cells across users by cumulative rounding,
// so the segments always sum to the full width (or to zero when every
// relative size is zero).
func segmentWidths(users []chart.UserInfo, width int) []int {
	widths := make([]int, len(users))
	if width <= 0 {
		return widths
	}

	var sum float64
	for _, u := range users {
		sum += u.RelativeSize
	}
	if sum <= 0 {
		return widths
	}

	acc := 0.0
	used := 0
	for i, u := range users {
		acc += u.RelativeSize / sum * float64(width)
		cells := int(acc+0.5) - used
		if cells < 0 {
			cells = 0
		}
		widths[i] = cells
		used += cells
	}
	return widths
}

// agedColor fades a contributor color toward gray as the track ages.
func agedColor(hex string, age float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	gray := colorful.Color{R: 0.45, G: 0.45, B: 0.45}
	return c.BlendLab(gray, age*0.7).Hex()
}

// formatTrackDuration renders a track length as m:ss, or h:mm:ss past an
// hour.
func formatTrackDuration(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	h := total / 3600
	min := total % 3600 / 60
	sec := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, min, sec)
	}
	return fmt.Sprintf("%d:%02d", min, sec)
}

// formatTotal renders a playlist or contributor total as "2h 15m" or "45m".
func formatTotal(d time.Duration) string {
	total := int(d.Round(time.Minute).Minutes())
	h := total / 60
	min := total % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, min)
	}
	return fmt.Sprintf("%dm", min)
}

func truncate(s string, w int) string {
	return runewidth.Truncate(s, w, "…")
}
