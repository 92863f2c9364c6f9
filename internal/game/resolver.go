package game

import "passball/internal/domain"

// Outcome - исход раунда
type Outcome string

const (
	OutcomeNone  Outcome = "none" // раунд сыгран вне PASS/GOAL, состояние не меняется
	OutcomePass  Outcome = "pass"
	OutcomeSteal Outcome = "steal"
	OutcomeSave  Outcome = "save"
	OutcomeGoal  Outcome = "goal"
)

// Round - результат разрешения раунда
type Round struct {
	Phase   Phase // фаза, в которой сыгран раунд
	Outcome Outcome
	Moves   [2]Move // в порядке players
}

// resolve разрешает раунд, когда у обоих игроков есть ход.
// Ходы читаются до мутации, поэтому результат не зависит от порядка прихода.
func (s *Session) resolve() Round {
	p1, p2 := s.players[0], s.players[1]
	m1, m2 := s.pending[p1], s.pending[p2]
	round := Round{Phase: s.phase, Outcome: OutcomeNone, Moves: [2]Move{m1, m2}}

	switch s.phase {
	case PhasePass:
		if m1 == m2 {
			s.flipBall()
			s.passCount = 0
			s.note = Note{Kind: NoteStolen, Subject: s.ballHolder}
			round.Outcome = OutcomeSteal
		} else {
			s.passCount++
			s.note = Note{Kind: NotePassOK, Subject: s.ballHolder}
			round.Outcome = OutcomePass
			if s.passCount >= PassesForGoal {
				s.phase = PhaseGoal
			}
		}

	case PhaseGoal:
		if m1 == m2 {
			s.flipBall()
			s.note = Note{Kind: NoteSaved, Subject: s.ballHolder}
			round.Outcome = OutcomeSave
		} else {
			scorer := s.ballHolder
			s.scores[scorer]++
			s.note = Note{Kind: NoteGoal, Subject: scorer}
			round.Outcome = OutcomeGoal

			if s.scores[scorer] >= GoalsToWin {
				s.phase = PhaseGameOver
			} else {
				s.flipBall()
				s.phase = PhasePass
			}
		}
		s.passCount = 0
	}

	s.pending = make(map[domain.ParticipantID]Move, 2)
	return round
}

func (s *Session) flipBall() {
	s.ballHolder = s.Opponent(s.ballHolder)
}
