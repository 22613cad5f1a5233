package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openguild/guildhall/internal/guild"
	"github.com/openguild/guildhall/pkg/domain"
)

// guildsLoadedMsg carries both listings the dashboard is built from: the
// user's guilds and the raw public listing. The explore section is derived
// from the two at render time, never stored. gen ties the result to the
// model instance that asked for it.
type guildsLoadedMsg struct {
	gen        int
	mine       []domain.Guild
	explorable []domain.Guild
	err        error
}

// openDetailMsg asks the root app to open a guild's detail view.
type openDetailMsg struct {
	name string
}

type guildsModel struct {
	guilds     *guild.Manager
	mine       []domain.Guild
	raw        []domain.Guild
	minMembers int
	gen        int // bumped when the model is torn down and rebuilt
	loading    bool
	err        string
	cursor     int
	width      int
	height     int
}

func newGuildsModel(g *guild.Manager, minMembers int) guildsModel {
	return guildsModel{guilds: g, minMembers: minMembers, loading: true}
}

func (m guildsModel) Init() tea.Cmd {
	return m.load()
}

func (m guildsModel) load() tea.Cmd {
	g := m.guilds
	gen := m.gen
	minMembers := m.minMembers
	return func() tea.Msg {
		mine, err := g.ListMine(context.Background())
		if err != nil {
			return guildsLoadedMsg{gen: gen, err: err}
		}
		explorable, err := g.ListExplorable(context.Background(), minMembers)
		if err != nil {
			return guildsLoadedMsg{gen: gen, err: err}
		}
		return guildsLoadedMsg{gen: gen, mine: mine, explorable: explorable}
	}
}

// rows returns the flattened list the cursor moves over: my guilds first,
// then the derived explore section.
func (m guildsModel) rows() []domain.Guild {
	return append(append([]domain.Guild{}, m.mine...), guild.ExplorableView(m.raw, m.mine)...)
}

func (m guildsModel) Update(msg tea.Msg) (guildsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case guildsLoadedMsg:
		if msg.gen != m.gen {
			return m, nil // answer for a model that was torn down
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.mine = msg.mine
		m.raw = msg.explorable
		if n := len(m.rows()); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.rows())-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "r":
			m.loading = true
			return m, m.load()
		case "enter":
			rows := m.rows()
			if m.cursor < len(rows) {
				return m, func() tea.Msg {
					return openDetailMsg{name: rows[m.cursor].GuildName}
				}
			}
		}
	}
	return m, nil
}

func (m guildsModel) View() string {
	if m.loading && len(m.rows()) == 0 {
		return "\n " + dimStyle.Render("loading guilds...")
	}
	if m.err != "" {
		return "\n " + errStyle.Render("error: "+m.err)
	}

	var b strings.Builder
	idx := 0

	writeRow := func(g domain.Guild) {
		cursor := "  "
		nameStyle := GuildStyle(g.GuildName)
		if idx == m.cursor {
			cursor = accentStyle.Render("> ")
		}
		members := fmt.Sprintf("%d member", len(g.Members))
		if len(g.Members) != 1 {
			members += "s"
		}
		line := cursor + nameStyle.Render(g.GuildName) + "  " + metaStyle.Render(members)
		if g.OwnerName != "" {
			line += metaStyle.Render(" · led by ") + dimStyle.Render(g.OwnerName)
		}
		if !g.CreatedAt.IsZero() {
			line += metaStyle.Render(" · "+formatTime(g.CreatedAt))
		}
		b.WriteString(" " + line + "\n")
		if d := g.Desc(); d != "" {
			b.WriteString("    " + dimStyle.Render(truncStr(d, m.bodyWidth())) + "\n")
		}
		idx++
	}

	b.WriteString("\n " + sectionHeaderStyle.Render("── YOUR GUILDS ──") + "\n")
	if len(m.mine) == 0 {
		b.WriteString(" " + dimStyle.Render("you belong to no guild yet") + "\n")
	}
	for _, g := range m.mine {
		writeRow(g)
	}

	explore := guild.ExplorableView(m.raw, m.mine)
	b.WriteString("\n " + sectionHeaderStyle.Render("── EXPLORE ──") + "\n")
	if len(explore) == 0 {
		b.WriteString(" " + dimStyle.Render("nothing new out there") + "\n")
	}
	for _, g := range explore {
		writeRow(g)
	}

	return b.String()
}

func (m guildsModel) bodyWidth() int {
	w := m.width - 8
	if w < 20 {
		return 20
	}
	return w
}
