package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openguild/guildhall/internal/browser"
	"github.com/openguild/guildhall/internal/config"
	"github.com/openguild/guildhall/internal/guild"
	"github.com/openguild/guildhall/internal/logging"
	"github.com/openguild/guildhall/internal/session"
	"github.com/openguild/guildhall/internal/store"
	"github.com/openguild/guildhall/internal/tui"
	"github.com/openguild/guildhall/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	stateDir := cfg.StateDir
	if stateDir == "" {
		stateDir, err = store.DefaultDir()
		if err != nil {
			return err
		}
	}

	logger, err := logging.New(stateDir, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	st := store.New(stateDir)
	api := client.New(cfg.APIURL, cfg.Token)
	sess := session.NewManager(api, st, logger)
	guilds := guild.NewManager(api, sess, logger)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("guildhall " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "terms":
			return openLegal("terms")
		case "privacy":
			return openLegal("privacy")
		case "login":
			return runLogin(cfg, sess)
		case "register":
			return runRegister(cfg, sess)
		case "guest":
			return runGuest(cfg, sess)
		case "refresh":
			return runRefresh(cfg, sess)
		case "logout":
			return runLogout(sess)
		case "whoami":
			return runWhoami(cfg, sess)
		case "invite":
			return runInvite(cfg, sess, guilds, os.Args[2:])
		}
	}

	// Only the TUI's auth form handles a missing or rejected session; a
	// transient validation failure here is not a reason to refuse to start.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	if err := sess.Validate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not reach %s: %v\n", cfg.APIURL, err)
	}
	cancel()

	app := tui.NewApp(sess, guilds, version, cfg.ExploreMinMembers)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// stdin is shared across prompts so a buffered read cannot swallow the
// following line.
var stdin = bufio.NewReader(os.Stdin)

// prompt reads one trimmed line from stdin.
func prompt(label string) (string, error) {
	fmt.Print(label + ": ")
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read %s: %w", label, err)
	}
	return strings.TrimSpace(line), nil
}

func credentials() (string, string, error) {
	email, err := prompt("email")
	if err != nil {
		return "", "", err
	}
	password, err := prompt("password")
	if err != nil {
		return "", "", err
	}
	return email, password, nil
}

func runLogin(cfg config.Config, sess *session.Manager) error {
	email, password, err := credentials()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	resp, err := sess.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s. Run guildhall to enter the hall.\n", resp.User.DisplayName())
	return nil
}

func runRegister(cfg config.Config, sess *session.Manager) error {
	email, password, err := credentials()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	if err := sess.Register(ctx, email, password); err != nil {
		return err
	}
	fmt.Println("Account created. Run guildhall login to sign in.")
	return nil
}

func runGuest(cfg config.Config, sess *session.Manager) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	if err := sess.ContinueAsGuest(ctx); err != nil {
		return err
	}
	fmt.Println("Wandering in as a guest. Run guildhall to enter the hall.")
	return nil
}

func runRefresh(cfg config.Config, sess *session.Manager) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	if err := sess.Validate(ctx); err != nil {
		return err
	}
	if err := sess.RefreshGuest(ctx); err != nil {
		return err
	}
	fmt.Println("Guest session extended.")
	return nil
}

func runLogout(sess *session.Manager) error {
	if err := sess.Logout(); err != nil {
		return err
	}
	printFarewell()
	return nil
}

func runWhoami(cfg config.Config, sess *session.Manager) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	if err := sess.Validate(ctx); err != nil {
		return err
	}
	u := sess.User()
	if u == nil {
		fmt.Println("Not signed in.")
		return nil
	}
	kind := "registered"
	if u.IsGuest() {
		kind = "guest"
	}
	fmt.Printf("%s (%s)\n", u.DisplayName(), kind)
	return nil
}

func runInvite(cfg config.Config, sess *session.Manager, guilds *guild.Manager, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return fmt.Errorf("usage: guildhall invite <user-id>")
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	if err := sess.Validate(ctx); err != nil {
		return err
	}
	if err := guilds.Invite(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Invitation sent.")
	return nil
}

func openLegal(page string) error {
	url := "https://guildhall.gg/" + page
	if err := browser.Open(url); err != nil {
		fmt.Println(url)
	}
	return nil
}
