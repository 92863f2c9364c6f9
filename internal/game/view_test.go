package game

import (
	"encoding/json"
	"strings"
	"testing"

	"passball/internal/domain"
)

type staticNames map[domain.ParticipantID]string

func (n staticNames) Name(id domain.ParticipantID) string {
	if name, ok := n[id]; ok {
		return name
	}
	return "Player"
}

func TestProject_BeforeToss(t *testing.T) {
	s := newTestSession(t, 2)
	v := Project(s, staticNames{host: "Alice", guest: "Bob"})

	if len(v.Players) != 2 || v.Players[0] != "Alice" || v.Players[1] != "Bob" {
		t.Fatalf("players %v", v.Players)
	}
	if v.Ball != "" || v.TossWinner != "" {
		t.Fatalf("ball=%q tossWinner=%q до жеребьевки", v.Ball, v.TossWinner)
	}
	if v.State != PhaseTossCall || v.Msg != "" {
		t.Fatalf("state=%s msg=%q", v.State, v.Msg)
	}
}

func TestProject_ResolvesNamesAndFallsBack(t *testing.T) {
	s := sessionInPass(t, guest)
	names := staticNames{host: "Alice"}

	v := Project(s, names)
	if v.Ball != "Player" {
		t.Fatalf("ball=%q, ожидали имя по умолчанию", v.Ball)
	}
	if v.TossWinner != "Alice" {
		t.Fatalf("tossWinner=%q", v.TossWinner)
	}
	if v.Msg != "Alice chose other" {
		t.Fatalf("msg=%q", v.Msg)
	}
	if v.Scores[0] != (ScoreLine{Name: "Alice", Score: 0}) || v.Scores[1] != (ScoreLine{Name: "Player", Score: 0}) {
		t.Fatalf("scores %v", v.Scores)
	}
}

func TestProject_NeverLeaksParticipantIDs(t *testing.T) {
	s := sessionInPass(t, host)
	s.phase = PhaseGoal
	playRound(t, s, "1", "2")

	data, err := json.Marshal(Project(s, staticNames{host: "Alice", guest: "Bob"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	for _, id := range []domain.ParticipantID{host, guest} {
		if strings.Contains(body, `"`+string(id)+`"`) {
			t.Fatalf("view содержит идентификатор %q: %s", id, body)
		}
	}
	if !strings.Contains(body, `"msg":"GOAL"`) || !strings.Contains(body, `"passCount":0`) {
		t.Fatalf("неожиданный view: %s", body)
	}
}
