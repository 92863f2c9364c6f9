package room

import (
	"errors"
	"regexp"
	"testing"

	"passball/internal/domain"
	"passball/internal/game"
)

type names map[domain.ParticipantID]string

func (n names) Name(id domain.ParticipantID) string {
	if s, ok := n[id]; ok {
		return s
	}
	return "Player"
}

func sequenceCodes(codes ...string) func() string {
	i := 0
	return func() string {
		c := codes[i%len(codes)]
		i++
		return c
	}
}

func TestRandomCode_Format(t *testing.T) {
	re := regexp.MustCompile(`^[0-9A-F]{6}$`)
	for i := 0; i < 100; i++ {
		if code := randomCode(); !re.MatchString(code) {
			t.Fatalf("неверный формат кода %q", code)
		}
	}
}

func TestCreate_RegeneratesOnCollision(t *testing.T) {
	reg := NewRegistry(WithCodeGenerator(sequenceCodes("AAAAAA", "AAAAAA", "BBBBBB")))

	first := reg.Create("h1", domain.VisibilityPublic)
	second := reg.Create("h2", domain.VisibilityPublic)
	if first != "AAAAAA" || second != "BBBBBB" {
		t.Fatalf("коды %q %q", first, second)
	}
}

func TestCreate_GivesUpOnStuckGenerator(t *testing.T) {
	reg := NewRegistry(WithCodeGenerator(func() string { return "SAME00" }))
	a := reg.Create("h1", domain.VisibilityPrivate)
	b := reg.Create("h2", domain.VisibilityPrivate)
	if a == b {
		t.Fatalf("коды комнат должны быть уникальны, оба %q", a)
	}
	if reg.Len() != 2 {
		t.Fatalf("комнат %d", reg.Len())
	}
}

func TestJoin_CreatesSessionWithHostAsCaller(t *testing.T) {
	reg := NewRegistry(WithTosser(game.TosserFunc(func() int { return 2 })))
	code := reg.Create("host", domain.VisibilityPublic)

	session, err := reg.Join(code, "guest")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if session.TossCaller() != "host" || session.Phase() != game.PhaseTossCall {
		t.Fatalf("caller=%q phase=%s", session.TossCaller(), session.Phase())
	}
	room, _ := reg.Get(code)
	if !room.Full() || room.Session != session || room.Participants[1] != "guest" {
		t.Fatalf("комната после входа: %+v", room)
	}
}

func TestJoin_UnavailableNeverMutates(t *testing.T) {
	reg := NewRegistry()
	code := reg.Create("host", domain.VisibilityPublic)

	tests := []struct {
		name string
		code string
		who  domain.ParticipantID
	}{
		{"unknown code", "NOPE00", "guest"},
		{"host joins own room", code, "host"},
	}
	for _, tt := range tests {
		if _, err := reg.Join(tt.code, tt.who); !errors.Is(err, ErrRoomUnavailable) {
			t.Fatalf("%s: ожидали ErrRoomUnavailable, получили %v", tt.name, err)
		}
	}
	room, _ := reg.Get(code)
	if len(room.Participants) != 1 || room.Session != nil || reg.Len() != 1 {
		t.Fatalf("реестр изменился: %+v", room)
	}

	if _, err := reg.Join(code, "guest"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	session := room.Session
	if _, err := reg.Join(code, "third"); !errors.Is(err, ErrRoomUnavailable) {
		t.Fatalf("полная комната: %v", err)
	}
	if len(room.Participants) != 2 || room.Session != session {
		t.Fatalf("полная комната изменилась: %+v", room)
	}
}

func TestListPublicOpen(t *testing.T) {
	reg := NewRegistry(WithCodeGenerator(sequenceCodes("AAAAAA", "BBBBBB", "CCCCCC", "DDDDDD")))
	reg.Create("a", domain.VisibilityPublic)
	reg.Create("b", domain.VisibilityPrivate)
	full := reg.Create("c", domain.VisibilityPublic)
	reg.Create("d", domain.VisibilityPublic)
	if _, err := reg.Join(full, "e"); err != nil {
		t.Fatalf("Join: %v", err)
	}

	got := reg.ListPublicOpen(names{"a": "Alice"})
	want := []Listing{{Code: "AAAAAA", Host: "Alice"}, {Code: "DDDDDD", Host: "Player"}}
	if len(got) != len(want) {
		t.Fatalf("список %v, ожидали %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("список %v, ожидали %v", got, want)
		}
	}
}

func TestFindByParticipantAndRemove(t *testing.T) {
	reg := NewRegistry(WithCodeGenerator(sequenceCodes("AAAAAA", "BBBBBB")))
	first := reg.Create("host", domain.VisibilityPublic)
	reg.Create("host", domain.VisibilityPublic)

	room, ok := reg.FindByParticipant("host")
	if !ok || room.Code != first {
		t.Fatalf("ожидали первую комнату хоста, получили %+v", room)
	}
	if _, ok := reg.FindByParticipant("nobody"); ok {
		t.Fatalf("посторонний не должен находиться")
	}

	reg.Remove(first)
	room, ok = reg.FindByParticipant("host")
	if !ok || room.Code != "BBBBBB" {
		t.Fatalf("после удаления ожидали BBBBBB, получили %+v", room)
	}
	reg.Remove("missing")
	if reg.Len() != 1 {
		t.Fatalf("комнат %d", reg.Len())
	}
}
