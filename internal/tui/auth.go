package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/openguild/guildhall/internal/session"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// authDoneMsg carries the result of a login attempt.
type authDoneMsg struct {
	err error
}

// registerDoneMsg carries the result of a registration attempt.
type registerDoneMsg struct {
	err error
}

// guestDoneMsg carries the result of guest issuance plus validation.
type guestDoneMsg struct {
	err error
}

const (
	authFieldEmail = iota
	authFieldPassword
	numAuthFields
)

type authModel struct {
	session *session.Manager
	mode    authMode
	inputs  [numAuthFields]textinput.Model
	focus   int
	busy    bool
	status  string
	width   int
	height  int
}

func newAuthModel(s *session.Manager) authModel {
	m := authModel{session: s}

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "> "
	email.PromptStyle = inputPromptStyle
	email.PlaceholderStyle = inputPlaceholderStyle
	email.CharLimit = 120
	email.Focus()
	m.inputs[authFieldEmail] = email

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "> "
	password.PromptStyle = inputPromptStyle
	password.PlaceholderStyle = inputPlaceholderStyle
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120
	m.inputs[authFieldPassword] = password

	return m
}

func (m authModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		return m, nil

	case registerDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		// Registration never mints a session; drop back to login so the
		// user signs in with the account they just created.
		m.mode = modeLogin
		m.status = "account created — sign in to continue"
		m.inputs[authFieldPassword].SetValue("")
		return m, nil

	case guestDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
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
		case "tab", "down":
			return m.setFocus((m.focus + 1) % numAuthFields), nil
		case "shift+tab", "up":
			return m.setFocus((m.focus - 1 + numAuthFields) % numAuthFields), nil
		case "ctrl+r":
			if m.mode == modeLogin {
				m.mode = modeRegister
			} else {
				m.mode = modeLogin
			}
			m.status = ""
			return m, nil
		case "ctrl+g":
			return m.startGuest()
		case "enter":
			if m.focus < numAuthFields-1 {
				return m.setFocus(m.focus + 1), nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m authModel) setFocus(i int) authModel {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	return m
}

func (m authModel) submit() (authModel, tea.Cmd) {
	email := strings.TrimSpace(m.inputs[authFieldEmail].Value())
	password := m.inputs[authFieldPassword].Value()
	if email == "" || password == "" {
		m.status = "email and password are required"
		return m, nil
	}

	m.busy = true
	m.status = ""
	sess := m.session
	if m.mode == modeRegister {
		return m, func() tea.Msg {
			return registerDoneMsg{err: sess.Register(context.Background(), email, password)}
		}
	}
	return m, func() tea.Msg {
		_, err := sess.Login(context.Background(), email, password)
		return authDoneMsg{err: err}
	}
}

func (m authModel) startGuest() (authModel, tea.Cmd) {
	m.busy = true
	m.status = ""
	sess := m.session
	return m, func() tea.Msg {
		return guestDoneMsg{err: sess.ContinueAsGuest(context.Background())}
	}
}

func (m authModel) View() string {
	var b strings.Builder

	title := "Sign in"
	if m.mode == modeRegister {
		title = "Create an account"
	}
	b.WriteString("\n " + selectedStyle.Render(title) + "\n\n")

	labels := [numAuthFields]string{"email", "password"}
	for i := 0; i < numAuthFields; i++ {
		label := metaStyle.Render(labels[i])
		if i == m.focus {
			label = accentStyle.Render(labels[i])
		}
		b.WriteString(" " + label + "\n")
		b.WriteString(" " + m.inputs[i].View() + "\n\n")
	}

	if m.busy {
		b.WriteString(" " + dimStyle.Render("talking to the hall...") + "\n")
	} else if m.status != "" {
		style := errStyle
		if strings.HasPrefix(m.status, "account created") {
			style = okStyle
		}
		b.WriteString(" " + style.Render(m.status) + "\n")
	}

	b.WriteString("\n " + dimStyle.Render("guests can browse and join guilds without an account") + "\n")

	return b.String()
}
