package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/openguild/guildhall/internal/browser"
	"github.com/openguild/guildhall/internal/guild"
	"github.com/openguild/guildhall/internal/session"
)

type view int

const (
	viewAuth view = iota
	viewDashboard
	viewDetail
	viewCreate
)

// App is the root Bubbletea model. It owns navigation and the session; the
// sub-models own their own loading and errors.
type App struct {
	session *session.Manager
	guilds  *guild.Manager
	version string

	view   view
	auth   authModel
	dash   guildsModel
	detail detailModel
	create createModel

	helpOpen   bool
	helpCursor int

	updateAvailable string
	width           int
	height          int
	frame           int // logo shimmer animation frame
}

// NewApp creates the TUI application. The session decides the opening view:
// a validated user lands on the dashboard, everyone else on the auth form.
func NewApp(sess *session.Manager, guilds *guild.Manager, version string, exploreMinMembers int) App {
	a := App{
		session: sess,
		guilds:  guilds,
		version: version,
		auth:    newAuthModel(sess),
		dash:    newGuildsModel(guilds, exploreMinMembers),
		detail:  newDetailModel(guilds, sess),
		create:  newCreateModel(guilds),
	}
	if sess.IsAuthenticated() {
		a.view = viewDashboard
	}
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{shimmerTickCmd(), checkVersion(a.version)}
	switch a.view {
	case viewDashboard:
		cmds = append(cmds, a.dash.Init())
	default:
		cmds = append(cmds, a.auth.Init())
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + help(1) = 3 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 3}
		a.auth, _ = a.auth.Update(bodyMsg)
		a.dash, _ = a.dash.Update(bodyMsg)
		a.detail, _ = a.detail.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case versionCheckMsg:
		if msg.hasUpdate {
			a.updateAvailable = msg.latestVersion
		}
		return a, nil

	case authDoneMsg, guestDoneMsg:
		var cmd tea.Cmd
		a.auth, cmd = a.auth.Update(msg)
		if a.session.IsAuthenticated() {
			a.view = viewDashboard
			return a, tea.Batch(cmd, a.dash.Init())
		}
		return a, cmd

	case registerDoneMsg:
		var cmd tea.Cmd
		a.auth, cmd = a.auth.Update(msg)
		return a, cmd

	case guildsLoadedMsg:
		var cmd tea.Cmd
		a.dash, cmd = a.dash.Update(msg)
		return a, cmd

	case openDetailMsg:
		a.view = viewDetail
		var cmd tea.Cmd
		a.detail, cmd = a.detail.open(msg.name)
		return a, cmd

	case detailLoadedMsg, membershipMsg, copiedMsg:
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd

	case guildCreatedMsg:
		var cmd tea.Cmd
		a.create, cmd = a.create.Update(msg)
		if msg.err == nil && msg.guild != nil {
			a.detail = a.detail.show(msg.guild)
			a.view = viewDetail
			return a, cmd
		}
		return a, cmd

	case tea.KeyMsg:
		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q", "ctrl+c":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(helpItems)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				item := helpItems[a.helpCursor]
				if item.url != "" {
					browser.Open(item.url) //nolint:errcheck // best-effort browser open
				}
			}
			return a, nil
		}

		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Global keys (only when not editing)
		if !a.isEditing() {
			switch msg.String() {
			case "h":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "q":
				return a, tea.Quit
			case "n":
				if a.view != viewCreate {
					a.create = a.create.reset()
					a.view = viewCreate
					return a, a.create.Init()
				}
				return a, nil
			case "x":
				// Logout finishes before the view changes; once the auth
				// form renders, no trace of the old session remains. The
				// replacement dashboard gets a new generation so a load the
				// old session still has in flight cannot land on it.
				a.session.Logout() //nolint:errcheck // store clear failure still ends the session
				a.view = viewAuth
				a.auth = newAuthModel(a.session)
				dash := newGuildsModel(a.guilds, a.dash.minMembers)
				dash.gen = a.dash.gen + 1
				a.dash = dash
				return a, a.auth.Init()
			case "esc":
				if a.view == viewDetail || a.view == viewCreate {
					a.view = viewDashboard
					a.dash.loading = true
					return a, a.dash.load()
				}
				return a, nil
			}
		} else if msg.String() == "esc" && a.view == viewCreate {
			a.view = viewDashboard
			a.dash.loading = true
			return a, a.dash.load()
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewAuth:
		a.auth, cmd = a.auth.Update(msg)
	case viewDashboard:
		a.dash, cmd = a.dash.Update(msg)
	case viewDetail:
		a.detail, cmd = a.detail.Update(msg)
	case viewCreate:
		a.create, cmd = a.create.Update(msg)
	}

	return a, cmd
}

// isEditing reports whether keystrokes belong to a text input right now.
func (a App) isEditing() bool {
	return a.view == viewAuth || a.view == viewCreate
}

func (a App) View() string {
	// Header: centered shimmer logo
	logo := renderShimmerLogo(a.frame)
	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	// Identity line below the logo
	var idLine string
	if u := a.session.User(); u != nil {
		idLine = normalStyle.Render(u.DisplayName())
		if u.IsGuest() {
			idLine += " " + guestStyle.Render("(guest)")
		}
	} else {
		idLine = dimStyle.Render("not signed in")
	}
	if a.view == viewDetail && a.detail.name != "" {
		idLine += "  " + GuildBadge(a.detail.name)
	}
	if a.updateAvailable != "" {
		idLine += "  " + accentStyle.Render(a.updateAvailable+" available")
	}
	idWidth := lipgloss.Width(idLine)
	idPad := (a.width - idWidth) / 2
	if idPad < 0 {
		idPad = 0
	}
	header += "\n" + strings.Repeat(" ", idPad) + idLine

	// Body + help bar
	var body string
	var help string
	switch a.view {
	case viewAuth:
		body = a.auth.View()
		if a.auth.mode == modeRegister {
			help = " " + helpEntry("enter", "create") + "  " + helpEntry("ctrl+r", "sign in") + "  " + helpEntry("ctrl+g", "guest") + "  " + helpEntry("ctrl+c", "quit")
		} else {
			help = " " + helpEntry("enter", "sign in") + "  " + helpEntry("ctrl+r", "register") + "  " + helpEntry("ctrl+g", "guest") + "  " + helpEntry("ctrl+c", "quit")
		}
	case viewDashboard:
		body = a.dash.View()
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("n", "found") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("x", "sign out") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	case viewDetail:
		body = a.detail.View()
		action := "join"
		if a.detail.memberOfCurrent() {
			action = "leave"
		}
		help = " " + helpEntry("enter", action) + "  " + helpEntry("c", "copy link") + "  " + helpEntry("o", "open web") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("esc", "back")
	case viewCreate:
		help = " " + helpEntry("tab", "next") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("esc", "cancel")
		body = a.create.View()
	}

	// Help overlay
	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	// Chrome budget: header(2) + help(1) = 3 lines + body
	chrome := 3
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s", header, body, help)
}
