package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/openguild/guildhall/internal/guild"
	"github.com/openguild/guildhall/pkg/domain"
)

// guildCreatedMsg carries the freshly created guild, owner already in the
// member list.
type guildCreatedMsg struct {
	guild *domain.Guild
	err   error
}

const (
	createFieldName = iota
	createFieldDescription
	numCreateFields
)

type createModel struct {
	guilds *guild.Manager
	inputs [numCreateFields]textinput.Model
	focus  int
	busy   bool
	status string
}

func newCreateModel(g *guild.Manager) createModel {
	m := createModel{guilds: g}

	name := textinput.New()
	name.Placeholder = "guild name"
	name.Prompt = "> "
	name.PromptStyle = inputPromptStyle
	name.PlaceholderStyle = inputPlaceholderStyle
	name.CharLimit = 60
	name.Focus()
	m.inputs[createFieldName] = name

	desc := textinput.New()
	desc.Placeholder = "what is this guild about? (optional)"
	desc.Prompt = "> "
	desc.PromptStyle = inputPromptStyle
	desc.PlaceholderStyle = inputPlaceholderStyle
	desc.CharLimit = 200
	m.inputs[createFieldDescription] = desc

	return m
}

func (m createModel) Init() tea.Cmd {
	return textinput.Blink
}

// reset clears the form for the next time the view opens.
func (m createModel) reset() createModel {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m = m.setFocus(createFieldName)
	m.busy = false
	m.status = ""
	return m
}

func (m createModel) Update(msg tea.Msg) (createModel, tea.Cmd) {
	switch msg := msg.(type) {
	case guildCreatedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		// Success is handled by the root app, which navigates to the
		// new guild's detail view.
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			return m.setFocus((m.focus + 1) % numCreateFields), nil
		case "shift+tab", "up":
			return m.setFocus((m.focus - 1 + numCreateFields) % numCreateFields), nil
		case "enter":
			if m.focus < numCreateFields-1 {
				return m.setFocus(m.focus + 1), nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m createModel) setFocus(i int) createModel {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	return m
}

func (m createModel) submit() (createModel, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[createFieldName].Value())
	description := strings.TrimSpace(m.inputs[createFieldDescription].Value())
	if name == "" {
		m.status = "a guild needs a name"
		return m, nil
	}

	m.busy = true
	m.status = ""
	mgr := m.guilds
	return m, func() tea.Msg {
		g, err := mgr.Create(context.Background(), name, description)
		return guildCreatedMsg{guild: g, err: err}
	}
}

func (m createModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + selectedStyle.Render("Found a guild") + "\n\n")

	labels := [numCreateFields]string{"name", "description"}
	for i := 0; i < numCreateFields; i++ {
		label := metaStyle.Render(labels[i])
		if i == m.focus {
			label = accentStyle.Render(labels[i])
		}
		b.WriteString(" " + label + "\n")
		b.WriteString(" " + m.inputs[i].View() + "\n\n")
	}

	if m.busy {
		b.WriteString(" " + dimStyle.Render("raising the banner...") + "\n")
	} else if m.status != "" {
		b.WriteString(" " + errStyle.Render(m.status) + "\n")
	}

	return b.String()
}
