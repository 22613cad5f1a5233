package tui

import (
	"strings"
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		age  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{49 * time.Hour, "2d ago"},
	}
	for _, tc := range tests {
		if got := formatTime(time.Now().Add(-tc.age)); got != tc.want {
			t.Errorf("formatTime(-%v) = %q, want %q", tc.age, got, tc.want)
		}
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("short", 10); got != "short" {
		t.Errorf("truncStr short = %q", got)
	}
	got := truncStr("a very long guild description", 10)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis, got %q", got)
	}
	if n := len([]rune(got)); n != 10 {
		t.Errorf("truncated length = %d runes, want 10", n)
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "a\nb\nc\nd\n"
	if got := truncateToHeight(s, 2); got != "a\nb\n" {
		t.Errorf("truncateToHeight = %q", got)
	}
	if got := truncateToHeight(s, 0); got != s {
		t.Errorf("maxLines<=0 must return input unchanged, got %q", got)
	}
	if got := truncateToHeight("a\nb", 5); got != "a\nb" {
		t.Errorf("short input must be unchanged, got %q", got)
	}
}

func TestGuildStyleStable(t *testing.T) {
	a := GuildStyle("night watch").Render("x")
	b := GuildStyle("night watch").Render("x")
	if a != b {
		t.Error("same name must get the same color")
	}
}

func TestGuildBadge(t *testing.T) {
	if GuildBadge("") != "" {
		t.Error("empty name yields no badge")
	}
	if !strings.Contains(GuildBadge("nyx"), "nyx") {
		t.Error("badge must contain the guild name")
	}
}
