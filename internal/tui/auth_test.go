package tui

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/openguild/guildhall/pkg/domain"
)

func TestAuthTypingGoesToFocusedField(t *testing.T) {
	sess, _, _ := newTestManagers(t, nil)
	m := newAuthModel(sess)

	for _, r := range "a@x.com" {
		m, _ = m.Update(keyMsg(string(r)))
	}
	if got := m.inputs[authFieldEmail].Value(); got != "a@x.com" {
		t.Errorf("email field = %q, want 'a@x.com'", got)
	}

	m, _ = m.Update(keyMsg("tab"))
	m, _ = m.Update(keyMsg("p"))
	if got := m.inputs[authFieldPassword].Value(); got != "p" {
		t.Errorf("password field = %q, want 'p'", got)
	}
}

func TestAuthSubmitRequiresBothFields(t *testing.T) {
	sess, _, _ := newTestManagers(t, nil)
	m := newAuthModel(sess)
	m.focus = authFieldPassword

	m, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("expected no command for an empty form")
	}
	if m.status == "" {
		t.Error("expected a validation message for an empty form")
	}
}

func TestAuthLoginFailureShowsBackendMessage(t *testing.T) {
	sess, _, _ := newTestManagers(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"}) //nolint:errcheck
	})
	m := newAuthModel(sess)
	m.inputs[authFieldEmail].SetValue("a@x.com")
	m.inputs[authFieldPassword].SetValue("bad")
	m.focus = authFieldPassword

	m, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected a login command")
	}
	if !m.busy {
		t.Error("expected busy while the login is in flight")
	}

	m, _ = m.Update(cmd().(authDoneMsg))
	if m.busy {
		t.Error("expected busy cleared after the result landed")
	}
	if m.status != "invalid credentials" {
		t.Errorf("status = %q, want backend message", m.status)
	}
}

func TestAuthRegisterSuccessDropsToLogin(t *testing.T) {
	sess, _, _ := newTestManagers(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "created"}) //nolint:errcheck
	})
	m := newAuthModel(sess)
	m.mode = modeRegister
	m.inputs[authFieldEmail].SetValue("a@x.com")
	m.inputs[authFieldPassword].SetValue("pw")
	m.focus = authFieldPassword

	m, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected a register command")
	}

	m, _ = m.Update(cmd().(registerDoneMsg))
	if m.mode != modeLogin {
		t.Error("expected mode back to login after registration")
	}
	if !strings.Contains(m.status, "account created") {
		t.Errorf("status = %q, want account-created note", m.status)
	}
	if m.inputs[authFieldPassword].Value() != "" {
		t.Error("expected password field cleared after registration")
	}
}

func TestAuthGuestFlow(t *testing.T) {
	sess, _, _ := newTestManagers(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/guest":
			json.NewEncoder(w).Encode(domain.GuestResponse{AccessToken: "G1"}) //nolint:errcheck
		case "/api/me":
			json.NewEncoder(w).Encode(domain.User{ID: "g1", UserType: domain.UserTypeGuest}) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	})
	m := newAuthModel(sess)

	m, cmd := m.Update(keyMsg("ctrl+g"))
	if cmd == nil {
		t.Fatal("expected a guest command")
	}

	msg := cmd().(guestDoneMsg)
	if msg.err != nil {
		t.Fatalf("guest flow failed: %v", msg.err)
	}
	if !sess.IsAuthenticated() {
		t.Error("expected authenticated session after guest flow")
	}
	u := sess.User()
	if u == nil || !u.IsGuest() {
		t.Error("expected a guest user in the session")
	}
}

func TestAuthModeToggle(t *testing.T) {
	sess, _, _ := newTestManagers(t, nil)
	m := newAuthModel(sess)

	m, _ = m.Update(keyMsg("ctrl+r"))
	if m.mode != modeRegister {
		t.Error("expected register mode after ctrl+r")
	}
	if view := m.View(); !strings.Contains(view, "Create an account") {
		t.Error("expected register title in view")
	}

	m, _ = m.Update(keyMsg("ctrl+r"))
	if m.mode != modeLogin {
		t.Error("expected login mode after second ctrl+r")
	}
}

func TestAuthBusyIgnoresKeys(t *testing.T) {
	sess, _, _ := newTestManagers(t, nil)
	m := newAuthModel(sess)
	m.busy = true

	m, cmd := m.Update(keyMsg("a"))
	if cmd != nil {
		t.Error("expected no command while busy")
	}
	if m.inputs[authFieldEmail].Value() != "" {
		t.Error("expected keystrokes dropped while busy")
	}
}
