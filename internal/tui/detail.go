package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/openguild/guildhall/internal/browser"
	"github.com/openguild/guildhall/internal/guild"
	"github.com/openguild/guildhall/internal/session"
	"github.com/openguild/guildhall/pkg/domain"
)

// detailLoadedMsg carries the result of resolving a guild by exact name.
// A nil guild with a nil error means no guild with that name exists.
type detailLoadedMsg struct {
	name  string
	guild *domain.Guild
	err   error
}

// membershipMsg carries the guild after a confirmed join or leave. The
// member list in it already includes the backend-confirmed delta.
type membershipMsg struct {
	guild  *domain.Guild
	joined bool
	err    error
}

// copiedMsg reports the outcome of copying the guild link.
type copiedMsg struct {
	err error
}

type detailModel struct {
	guilds  *guild.Manager
	session *session.Manager
	name    string
	guild   *domain.Guild
	loading bool
	busy    bool
	status  string
	good    bool // status is a success note, not an error
	width   int
	height  int
}

func newDetailModel(g *guild.Manager, s *session.Manager) detailModel {
	return detailModel{guilds: g, session: s}
}

// open points the view at a guild and starts the fetch. A stale result from
// a previous guild is recognized by name and dropped.
func (m detailModel) open(name string) (detailModel, tea.Cmd) {
	m.name = name
	m.guild = nil
	m.loading = true
	m.busy = false
	m.status = ""
	return m, m.load(name)
}

// show seeds the view with a guild already in hand (e.g. fresh from create)
// and skips the fetch.
func (m detailModel) show(g *domain.Guild) detailModel {
	m.name = g.GuildName
	m.guild = g
	m.loading = false
	m.busy = false
	m.status = ""
	return m
}

func (m detailModel) load(name string) tea.Cmd {
	mgr := m.guilds
	return func() tea.Msg {
		g, err := mgr.FetchByName(context.Background(), name)
		if err != nil || g == nil {
			return detailLoadedMsg{name: name, guild: g, err: err}
		}
		// A guild missing its own owner is drifted state; take another
		// round trip rather than patching it locally.
		g, err = mgr.Reconcile(context.Background(), g)
		return detailLoadedMsg{name: name, guild: g, err: err}
	}
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		if msg.name != m.name {
			return m, nil // answer for a guild we already left
		}
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
			m.good = false
			return m, nil
		}
		if msg.guild == nil {
			m.status = fmt.Sprintf("no guild named %q", msg.name)
			m.good = false
			return m, nil
		}
		m.guild = msg.guild
		m.status = ""
		return m, nil

	case membershipMsg:
		m.busy = false
		if msg.err != nil {
			if errors.Is(msg.err, guild.ErrAuthRequired) {
				m.status = guild.ErrAuthRequired.Error()
			} else {
				m.status = msg.err.Error()
			}
			m.good = false
			return m, nil
		}
		if msg.guild == nil || msg.guild.GuildName != m.name {
			return m, nil
		}
		m.guild = msg.guild
		m.good = true
		if msg.joined {
			m.status = "joined " + msg.guild.GuildName
		} else {
			m.status = "left " + msg.guild.GuildName
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
			m.good = false
		} else {
			m.status = "link copied"
			m.good = true
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			return m.toggleMembership()
		case "r":
			if m.name != "" {
				m.loading = true
				return m, m.load(m.name)
			}
		case "c":
			link := m.link()
			return m, func() tea.Msg {
				return copiedMsg{err: clipboard.WriteAll(link)}
			}
		case "o":
			browser.Open(m.link()) //nolint:errcheck // best-effort browser open
			return m, nil
		}
	}
	return m, nil
}

func (m detailModel) link() string {
	return "https://guildhall.gg/guild/" + url.PathEscape(m.name)
}

// toggleMembership joins or leaves based on current membership. The mutation
// runs on a copy; the on-screen guild only changes once the backend confirms.
func (m detailModel) toggleMembership() (detailModel, tea.Cmd) {
	if m.guild == nil {
		return m, nil
	}
	u := m.session.User()
	if u == nil {
		m.status = guild.ErrAuthRequired.Error()
		m.good = false
		return m, nil
	}

	working := *m.guild
	working.Members = append([]string{}, m.guild.Members...)
	joining := !working.HasMember(u.ID)

	m.busy = true
	m.status = ""
	mgr := m.guilds
	return m, func() tea.Msg {
		var err error
		if joining {
			err = mgr.Join(context.Background(), &working)
		} else {
			err = mgr.Leave(context.Background(), &working)
		}
		if err != nil {
			return membershipMsg{joined: joining, err: err}
		}
		fresh, err := mgr.Reconcile(context.Background(), &working)
		if err != nil {
			fresh = &working
		}
		return membershipMsg{guild: fresh, joined: joining}
	}
}

func (m detailModel) View() string {
	if m.loading {
		return "\n " + dimStyle.Render("loading "+m.name+"...")
	}
	if m.guild == nil {
		if m.status != "" {
			return "\n " + errStyle.Render(m.status)
		}
		return "\n " + dimStyle.Render("no guild selected")
	}

	g := m.guild
	var b strings.Builder

	cardWidth := m.width - 4
	if cardWidth > 60 {
		cardWidth = 60
	}
	if cardWidth < 30 {
		cardWidth = 30
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Background(surfaceColor).
		Padding(0, 1).
		Width(cardWidth)

	var head strings.Builder
	head.WriteString(GuildStyle(g.GuildName).Render(g.GuildName) + "\n")
	if d := g.Desc(); d != "" {
		head.WriteString(normalStyle.Render(truncStr(d, m.bodyWidth())) + "\n")
	}
	meta := fmt.Sprintf("%d member", len(g.Members))
	if len(g.Members) != 1 {
		meta += "s"
	}
	if g.OwnerName != "" {
		meta += " · led by " + g.OwnerName
	}
	if !g.CreatedAt.IsZero() {
		meta += " · founded " + formatTime(g.CreatedAt)
	}
	head.WriteString(metaStyle.Render(meta))

	b.WriteString("\n" + card.Render(head.String()) + "\n")

	b.WriteString("\n " + sectionHeaderStyle.Render("── MEMBERS ──") + "\n")
	me := m.session.User()
	for _, member := range g.Members {
		line := " " + memberDotStyle.Render("●") + " " + normalStyle.Render(member)
		if member == g.OwnerID {
			line += " " + ownerStyle.Render("(owner)")
		}
		if me != nil && member == me.ID {
			line += " " + accentStyle.Render("(you)")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(" " + dimStyle.Render("waiting for the hall...") + "\n")
	} else if m.status != "" {
		style := errStyle
		if m.good {
			style = okStyle
		}
		b.WriteString(" " + style.Render(m.status) + "\n")
	}

	return b.String()
}

// memberOfCurrent reports whether the signed-in user is in the member list.
func (m detailModel) memberOfCurrent() bool {
	u := m.session.User()
	return u != nil && m.guild != nil && m.guild.HasMember(u.ID)
}

func (m detailModel) bodyWidth() int {
	w := m.width - 4
	if w < 20 {
		return 20
	}
	return w
}
