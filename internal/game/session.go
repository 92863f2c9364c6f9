package game

import "passball/internal/domain"

// NoteKind - тип последнего события для подписи в интерфейсе
type NoteKind int

const (
	NoteNone NoteKind = iota
	NoteTossWon
	NoteBallPlaced
	NotePassOK
	NoteStolen
	NoteSaved
	NoteGoal
)

// Note хранит последнее событие без готового текста: имена подставляет проектор
type Note struct {
	Kind    NoteKind
	Subject domain.ParticipantID
	Detail  string
}

// TossResult - итог жеребьевки
type TossResult struct {
	Number int
	Winner domain.ParticipantID
}

// Session - состояние одного матча двух игроков.
// Не потокобезопасна: все вызовы сериализует владелец (ws.Hub).
type Session struct {
	players    [2]domain.ParticipantID
	phase      Phase
	tossCaller domain.ParticipantID
	tossWinner domain.ParticipantID
	ballHolder domain.ParticipantID
	passCount  int
	pending    map[domain.ParticipantID]Move
	scores     map[domain.ParticipantID]int
	note       Note
	tosser     Tosser
}

// NewSession создает сессию; host бросает жребий
func NewSession(host, guest domain.ParticipantID, tosser Tosser) (*Session, error) {
	if host == "" || guest == "" || host == guest {
		return nil, ErrSamePlayer
	}
	if tosser == nil {
		tosser = CryptoTosser{}
	}
	return &Session{
		players:    [2]domain.ParticipantID{host, guest},
		phase:      PhaseTossCall,
		tossCaller: host,
		pending:    make(map[domain.ParticipantID]Move, 2),
		scores:     map[domain.ParticipantID]int{host: 0, guest: 0},
		tosser:     tosser,
	}, nil
}

func (s *Session) Players() [2]domain.ParticipantID  { return s.players }
func (s *Session) Phase() Phase                      { return s.phase }
func (s *Session) TossCaller() domain.ParticipantID  { return s.tossCaller }
func (s *Session) TossWinner() domain.ParticipantID  { return s.tossWinner }
func (s *Session) BallHolder() domain.ParticipantID  { return s.ballHolder }
func (s *Session) PassCount() int                    { return s.passCount }
func (s *Session) Score(id domain.ParticipantID) int { return s.scores[id] }
func (s *Session) PendingMoves() int                 { return len(s.pending) }
func (s *Session) Note() Note                        { return s.note }
func (s *Session) IsOver() bool                      { return s.phase == PhaseGameOver }
func (s *Session) HasPlayer(id domain.ParticipantID) bool {
	return id != "" && (s.players[0] == id || s.players[1] == id)
}

// Winner возвращает игрока, набравшего GoalsToWin, если игра окончена
func (s *Session) Winner() (domain.ParticipantID, bool) {
	if s.phase != PhaseGameOver {
		return "", false
	}
	for _, p := range s.players {
		if s.scores[p] >= GoalsToWin {
			return p, true
		}
	}
	return "", false
}

// Opponent возвращает соперника игрока
func (s *Session) Opponent(id domain.ParticipantID) domain.ParticipantID {
	if s.players[0] == id {
		return s.players[1]
	}
	return s.players[0]
}

// checkActor проверяет, что sender может действовать в фазе want
func (s *Session) checkActor(sender, actor domain.ParticipantID, want Phase) error {
	if !s.HasPlayer(sender) {
		return ErrNotPlayer
	}
	if s.phase == PhaseGameOver {
		return ErrGameOver
	}
	if sender != actor {
		return ErrWrongActor
	}
	if s.phase != want {
		return ErrWrongPhase
	}
	return nil
}

// CallToss - вызов жребия: только tossCaller и только в TOSS_CALL
func (s *Session) CallToss(sender domain.ParticipantID, pick string) (TossResult, error) {
	if err := s.checkActor(sender, s.tossCaller, PhaseTossCall); err != nil {
		return TossResult{}, err
	}
	if pick != PickEven && pick != PickOdd {
		return TossResult{}, ErrInvalidPick
	}

	n := s.tosser.Draw()
	if callerWins(pick, n) {
		s.tossWinner = s.tossCaller
	} else {
		s.tossWinner = s.Opponent(s.tossCaller)
	}

	s.phase = PhaseTossWaitProceed
	s.note = Note{Kind: NoteTossWon, Subject: s.tossWinner}
	return TossResult{Number: n, Winner: s.tossWinner}, nil
}

// Proceed - победитель жеребьевки подтверждает результат
func (s *Session) Proceed(sender domain.ParticipantID) error {
	if err := s.checkActor(sender, s.tossWinner, PhaseTossWaitProceed); err != nil {
		return err
	}
	s.phase = PhaseTossDecide
	s.note = Note{}
	return nil
}

// Decide - победитель жеребьевки выбирает, у кого мяч
func (s *Session) Decide(sender domain.ParticipantID, choice string) error {
	if err := s.checkActor(sender, s.tossWinner, PhaseTossDecide); err != nil {
		return err
	}
	if choice == ChoiceCenter {
		s.ballHolder = sender
	} else {
		s.ballHolder = s.Opponent(sender)
	}
	s.phase = PhasePass
	s.note = Note{Kind: NoteBallPlaced, Subject: sender, Detail: choice}
	return nil
}

// Play записывает ход игрока. Возвращает раунд, если оба хода собраны и раунд разрешен,
// и nil, если ждем соперника. Повторный ход до разрешения перезаписывает предыдущий.
func (s *Session) Play(sender domain.ParticipantID, move Move) (*Round, error) {
	if !s.HasPlayer(sender) {
		return nil, ErrNotPlayer
	}
	if s.phase == PhaseGameOver {
		return nil, ErrGameOver
	}

	s.pending[sender] = move
	if len(s.pending) < len(s.players) {
		return nil, nil
	}

	round := s.resolve()
	return &round, nil
}
