package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/openguild/guildhall/pkg/domain"
)

func TestDetailLoadResolvesExactName(t *testing.T) {
	_, guilds, _ := newTestManagers(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.Guild{ //nolint:errcheck
			{GuildName: "night watchmen", OwnerID: "o1", Members: []string{"o1"}},
			{GuildName: "night watch", OwnerID: "o2", Members: []string{"o2"}},
		})
	})
	sess, _, _ := newTestManagers(t, nil)
	m := newDetailModel(guilds, sess)

	m, cmd := m.open("night watch")
	if !m.loading {
		t.Error("expected loading after open")
	}
	msg := cmd().(detailLoadedMsg)
	m, _ = m.Update(msg)
	if m.guild == nil || m.guild.GuildName != "night watch" {
		t.Fatalf("expected exact match, got %+v", m.guild)
	}
}

func TestDetailNotFound(t *testing.T) {
	_, guilds, _ := newTestManagers(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.Guild{}) //nolint:errcheck
	})
	sess, _, _ := newTestManagers(t, nil)
	m := newDetailModel(guilds, sess)

	m, cmd := m.open("ghost guild")
	m, _ = m.Update(cmd().(detailLoadedMsg))
	if m.guild != nil {
		t.Fatal("expected no guild")
	}
	if !strings.Contains(m.status, "ghost guild") {
		t.Errorf("status = %q, want not-found note naming the guild", m.status)
	}
}

func TestDetailStaleResultDropped(t *testing.T) {
	sess, guilds, _ := newTestManagers(t, nil)
	m := newDetailModel(guilds, sess)
	m.name = "current"

	g := &domain.Guild{GuildName: "previous", OwnerID: "o1", Members: []string{"o1"}}
	m, _ = m.Update(detailLoadedMsg{name: "previous", guild: g})
	if m.guild != nil {
		t.Error("result for a guild we already left must be dropped")
	}
}

func TestDetailJoinAppliesConfirmedDelta(t *testing.T) {
	sess, guilds, st := newTestManagers(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/me":
			serveUser(w, "u1")
		case "/api/guild/join":
			json.NewEncoder(w).Encode(map[string]string{"message": "joined"}) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	})
	if err := st.SetToken("T1"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if err := sess.Validate(context.Background()); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	m := newDetailModel(guilds, sess)
	m = m.show(&domain.Guild{GuildName: "night watch", OwnerID: "owner1", Members: []string{"owner1"}})

	m, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected a membership command")
	}
	if !m.busy {
		t.Error("expected busy while the join is in flight")
	}

	msg := cmd().(membershipMsg)
	if msg.err != nil {
		t.Fatalf("join: %v", msg.err)
	}
	m, _ = m.Update(msg)

	want := []string{"owner1", "u1"}
	if len(m.guild.Members) != len(want) || m.guild.Members[0] != want[0] || m.guild.Members[1] != want[1] {
		t.Errorf("members = %v, want %v", m.guild.Members, want)
	}
	if !strings.Contains(m.status, "joined") {
		t.Errorf("status = %q, want join confirmation", m.status)
	}
}

func TestDetailLeaveAppliesConfirmedDelta(t *testing.T) {
	sess, guilds, st := newTestManagers(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/me":
			serveUser(w, "u1")
		case "/api/guild/leave":
			json.NewEncoder(w).Encode(map[string]string{"message": "left"}) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	})
	if err := st.SetToken("T1"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if err := sess.Validate(context.Background()); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	m := newDetailModel(guilds, sess)
	m = m.show(&domain.Guild{GuildName: "night watch", OwnerID: "owner1", Members: []string{"owner1", "u1"}})

	m, cmd := m.Update(keyMsg("enter"))
	msg := cmd().(membershipMsg)
	if msg.err != nil {
		t.Fatalf("leave: %v", msg.err)
	}
	m, _ = m.Update(msg)

	if len(m.guild.Members) != 1 || m.guild.Members[0] != "owner1" {
		t.Errorf("members = %v, want [owner1]", m.guild.Members)
	}
}

func TestDetailJoinWithoutSession(t *testing.T) {
	sess, guilds, _ := newTestManagers(t, nil)
	m := newDetailModel(guilds, sess)
	m = m.show(&domain.Guild{GuildName: "night watch", OwnerID: "owner1", Members: []string{"owner1"}})

	m, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("expected no network command without a session")
	}
	if m.status == "" {
		t.Error("expected a sign-in hint")
	}
	if len(m.guild.Members) != 1 {
		t.Error("members must not change without a confirmed mutation")
	}
}

func TestDetailFailedJoinLeavesGuildUntouched(t *testing.T) {
	sess, guilds, _ := newTestManagers(t, nil)
	m := newDetailModel(guilds, sess)
	g := &domain.Guild{GuildName: "night watch", OwnerID: "owner1", Members: []string{"owner1"}}
	m = m.show(g)
	m.busy = true

	m, _ = m.Update(membershipMsg{joined: true, err: context.DeadlineExceeded})
	if m.busy {
		t.Error("expected busy cleared")
	}
	if len(m.guild.Members) != 1 {
		t.Errorf("members = %v, want unchanged", m.guild.Members)
	}
}

func TestDetailViewMarksOwnerAndSelf(t *testing.T) {
	sess, guilds, st := newTestManagers(t, func(w http.ResponseWriter, r *http.Request) {
		serveUser(w, "u1")
	})
	if err := st.SetToken("T1"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if err := sess.Validate(context.Background()); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	m := newDetailModel(guilds, sess)
	m = m.show(&domain.Guild{GuildName: "night watch", OwnerID: "owner1", Members: []string{"owner1", "u1"}})
	m.width = 80

	view := m.View()
	if !strings.Contains(view, "(owner)") {
		t.Error("expected owner marker")
	}
	if !strings.Contains(view, "(you)") {
		t.Error("expected self marker")
	}
	if !m.memberOfCurrent() {
		t.Error("expected memberOfCurrent to see the signed-in user")
	}
}

func TestDetailLink(t *testing.T) {
	sess, guilds, _ := newTestManagers(t, nil)
	m := newDetailModel(guilds, sess)
	m.name = "night watch"

	if got := m.link(); got != "https://guildhall.gg/guild/night%20watch" {
		t.Errorf("link = %q", got)
	}
}
