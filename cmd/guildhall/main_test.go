package main

import (
	"bufio"
	"strings"
	"testing"
)

func TestCredentialsReadsBothLines(t *testing.T) {
	old := stdin
	defer func() { stdin = old }()
	stdin = bufio.NewReader(strings.NewReader("a@x.com\nsecret pw\n"))

	email, password, err := credentials()
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	if email != "a@x.com" {
		t.Errorf("email = %q", email)
	}
	if password != "secret pw" {
		t.Errorf("password = %q", password)
	}
}

func TestPromptTrimsWhitespace(t *testing.T) {
	old := stdin
	defer func() { stdin = old }()
	stdin = bufio.NewReader(strings.NewReader("  padded@x.com  \n"))

	got, err := prompt("email")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if got != "padded@x.com" {
		t.Errorf("prompt = %q", got)
	}
}

func TestPromptErrOnClosedInput(t *testing.T) {
	old := stdin
	defer func() { stdin = old }()
	stdin = bufio.NewReader(strings.NewReader("no newline"))

	if _, err := prompt("email"); err == nil {
		t.Error("expected error for input without a newline")
	}
}

func TestStewardFarewellsNonEmpty(t *testing.T) {
	for i, f := range stewardFarewells {
		if strings.TrimSpace(f) == "" {
			t.Errorf("farewell %d is empty", i)
		}
	}
}
