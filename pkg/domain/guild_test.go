package domain

import "testing"

func testGuild() Guild {
	return Guild{
		ID:        "g1",
		GuildName: "Night Crew",
		OwnerID:   "owner1",
		Members:   []string{"owner1"},
	}
}

func TestAddMemberAppends(t *testing.T) {
	g := testGuild()
	g.AddMember("u1")
	if len(g.Members) != 2 {
		t.Fatalf("got %d members, want 2", len(g.Members))
	}
	if g.Members[1] != "u1" {
		t.Errorf("Members[1] = %q, want %q", g.Members[1], "u1")
	}
}

func TestAddMemberIsSetLike(t *testing.T) {
	g := testGuild()
	g.AddMember("u1")
	g.AddMember("u1")
	if len(g.Members) != 2 {
		t.Errorf("duplicate add changed members: %v", g.Members)
	}
}

func TestRemoveMemberPreservesOrder(t *testing.T) {
	g := testGuild()
	g.Members = []string{"owner1", "u1", "u2"}
	g.RemoveMember("u1")
	if len(g.Members) != 2 || g.Members[0] != "owner1" || g.Members[1] != "u2" {
		t.Errorf("Members = %v, want [owner1 u2]", g.Members)
	}
}

func TestRemoveMemberMissingIsNoop(t *testing.T) {
	g := testGuild()
	g.RemoveMember("nobody")
	if len(g.Members) != 1 {
		t.Errorf("Members = %v, want [owner1]", g.Members)
	}
}

func TestOwnerPresent(t *testing.T) {
	g := testGuild()
	if !g.OwnerPresent() {
		t.Error("owner should be present in a fresh guild")
	}
	g.RemoveMember("owner1")
	if g.OwnerPresent() {
		t.Error("OwnerPresent() = true after removing owner")
	}
}

func TestDesc(t *testing.T) {
	g := testGuild()
	if g.Desc() != "" {
		t.Errorf("Desc() = %q, want empty", g.Desc())
	}
	d := "late night pickup games"
	g.Description = &d
	if g.Desc() != d {
		t.Errorf("Desc() = %q, want %q", g.Desc(), d)
	}
}

func TestUserIsGuest(t *testing.T) {
	u := User{ID: "u1", UserType: UserTypeGuest}
	if !u.IsGuest() {
		t.Error("IsGuest() = false for guest user")
	}
	u.UserType = UserTypeRegistered
	if u.IsGuest() {
		t.Error("IsGuest() = true for registered user")
	}
}

func TestUserDisplayName(t *testing.T) {
	u := User{ID: "u1", UserType: UserTypeGuest}
	if got := u.DisplayName(); got != "guest" {
		t.Errorf("DisplayName() = %q, want %q", got, "guest")
	}
	u.Name = "Minh"
	if got := u.DisplayName(); got != "Minh" {
		t.Errorf("DisplayName() = %q, want %q", got, "Minh")
	}
	reg := User{ID: "u2", UserType: UserTypeRegistered}
	if got := reg.DisplayName(); got != "u2" {
		t.Errorf("DisplayName() = %q, want %q", got, "u2")
	}
}
