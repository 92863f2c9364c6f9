package domain

import "time"

// Итог завершенного матча для истории
type MatchRecord struct {
	ID         string    `db:"id" json:"id"`
	RoomCode   string    `db:"room_code" json:"room_code"`
	Player1    string    `db:"player1" json:"player1"`
	Player2    string    `db:"player2" json:"player2"`
	Score1     int       `db:"score1" json:"score1"`
	Score2     int       `db:"score2" json:"score2"`
	Winner     string    `db:"winner" json:"winner"`
	FinishedAt time.Time `db:"finished_at" json:"finished_at"`
}

// WinnerStat - строка таблицы лидеров
type WinnerStat struct {
	Name    string    `db:"winner" json:"name"`
	Wins    int64     `db:"wins" json:"wins"`
	LastWin time.Time `db:"last_win" json:"last_win"`
}
