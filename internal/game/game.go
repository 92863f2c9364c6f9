package game

import "errors"

// Phase - фаза игровой сессии
type Phase string

const (
	PhaseTossCall        Phase = "TOSS_CALL"
	PhaseTossWaitProceed Phase = "TOSS_WAIT_PROCEED"
	PhaseTossDecide      Phase = "TOSS_DECIDE"
	PhasePass            Phase = "PASS"
	PhaseGoal            Phase = "GOAL"
	PhaseGameOver        Phase = "GAME_OVER"
)

const (
	// столько успешных пасов подряд открывают удар по воротам
	PassesForGoal = 3
	// столько голов нужно для победы
	GoalsToWin = 3

	TossMin = 1
	TossMax = 10
)

// Варианты при жеребьевке
const (
	PickEven = "even"
	PickOdd  = "odd"

	// мяч остается у победителя жеребьевки, любой другой выбор отдает мяч сопернику
	ChoiceCenter = "center"
)

var (
	ErrSamePlayer  = errors.New("session needs two distinct players")
	ErrNotPlayer   = errors.New("participant is not in this session")
	ErrWrongActor  = errors.New("participant may not act now")
	ErrWrongPhase  = errors.New("event is not allowed in current phase")
	ErrGameOver    = errors.New("game is over")
	ErrInvalidPick = errors.New("toss pick must be even or odd")
)

// Move - ход игрока; при разрешении раунда значимо только равенство ходов
type Move string
