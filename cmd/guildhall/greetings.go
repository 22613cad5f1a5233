package main

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

// stewardFarewells is what the hall steward says on logout.
var stewardFarewells = [...]string{
	"The hall will keep your seat. Probably.",
	"Your guildmates will notice the empty chair.",
	"The door is never locked from the outside.",
	"Gone already? The fire was just getting warm.",
	"The steward marks your name off the evening roll.",
	"Every departure is a future arrival. The hall is patient.",
	"Safe travels. The banners will still be hanging when you return.",
	"The hall forgets no face, even the ones that leave early.",
	"Someone will drink your share of the mead. Rules of the hall.",
	"Come back when you have stories worth the telling.",
}

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f0c24a")).
		Bold(true).
		Render("G U I L D H A L L")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(`"Every hall has room for one more."`)

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"guildhall", "Enter the hall (interactive TUI)"},
		{"guildhall login", "Sign in with email and password"},
		{"guildhall register", "Create an account"},
		{"guildhall guest", "Continue as a guest"},
		{"guildhall refresh", "Extend a guest session"},
		{"guildhall logout", "Clear your session"},
		{"guildhall whoami", "Show the signed-in user"},
		{"guildhall invite <user-id>", "Invite a user to your guild"},
		{"guildhall terms", "Terms of Service"},
		{"guildhall privacy", "Privacy Policy"},
		{"guildhall --version", "Show version"},
		{"guildhall help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  %s\n\n  Commands:\n", title, quote)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-28s", c.cmd)), descStyle.Render(c.desc))
	}
	url := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("https://guildhall.gg")
	fmt.Printf("\n  %s\n\n", url)
}

func printFarewell() {
	msg := stewardFarewells[rand.Intn(len(stewardFarewells))]

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)

	attrib := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#D4A017")).
		Render("— The Steward")

	fmt.Printf("Logged out.\n\n%s\n%s\n\n", quote, attrib)
}
