package game

import (
	"fmt"

	"passball/internal/domain"
)

// NameResolver переводит идентификатор участника в отображаемое имя
type NameResolver interface {
	Name(id domain.ParticipantID) string
}

// ScoreLine - счет одного игрока в порядке players
type ScoreLine struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// View - снимок сессии для клиента, без идентификаторов подключений
type View struct {
	Players    []string    `json:"players"`
	Ball       string      `json:"ball,omitempty"`
	PassCount  int         `json:"passCount"`
	State      Phase       `json:"state"`
	Scores     []ScoreLine `json:"scores"`
	Msg        string      `json:"msg"`
	TossWinner string      `json:"tossWinner,omitempty"`
}

// Project строит View для рассылки после каждой мутации
func Project(s *Session, names NameResolver) View {
	v := View{
		Players:   make([]string, 0, len(s.players)),
		PassCount: s.passCount,
		State:     s.phase,
		Scores:    make([]ScoreLine, 0, len(s.players)),
		Msg:       s.note.Text(names),
	}
	for _, p := range s.players {
		name := names.Name(p)
		v.Players = append(v.Players, name)
		v.Scores = append(v.Scores, ScoreLine{Name: name, Score: s.scores[p]})
	}
	if s.ballHolder != "" {
		v.Ball = names.Name(s.ballHolder)
	}
	if s.tossWinner != "" {
		v.TossWinner = names.Name(s.tossWinner)
	}
	return v
}

// Text - подпись к последнему событию
func (n Note) Text(names NameResolver) string {
	switch n.Kind {
	case NoteTossWon:
		return names.Name(n.Subject) + " won the toss"
	case NoteBallPlaced:
		return fmt.Sprintf("%s chose %s", names.Name(n.Subject), n.Detail)
	case NotePassOK:
		return "Pass ok"
	case NoteStolen:
		return "Ball stolen"
	case NoteSaved:
		return "Saved"
	case NoteGoal:
		return "GOAL"
	default:
		return ""
	}
}
