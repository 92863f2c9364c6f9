package repository

import (
	"context"
	"time"

	"passball/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// отвечает за историю завершенных матчей
type MatchRepository struct {
	db *pgxpool.Pool
}

func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

// Create сохраняет итог матча; пустые ID и время заполняются здесь
func (r *MatchRepository) Create(ctx context.Context, m *domain.MatchRecord) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.FinishedAt.IsZero() {
		m.FinishedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO matches (id, room_code, player1, player2, score1, score2, winner, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, m.ID, m.RoomCode, m.Player1, m.Player2, m.Score1, m.Score2, m.Winner, m.FinishedAt)
	return err
}

// GetRecent возвращает последние матчи, новые первыми
func (r *MatchRepository) GetRecent(ctx context.Context, limit int) ([]*domain.MatchRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, room_code, player1, player2, score1, score2, winner, finished_at
		FROM matches
		ORDER BY finished_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatches(rows)
}

// GetTopWinners - игроки с наибольшим числом побед (по отображаемому имени)
func (r *MatchRepository) GetTopWinners(ctx context.Context, limit int) ([]domain.WinnerStat, error) {
	rows, err := r.db.Query(ctx, `
		SELECT winner, COUNT(*) AS wins, MAX(finished_at) AS last_win
		FROM matches
		WHERE winner <> ''
		GROUP BY winner
		ORDER BY wins DESC, last_win DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]domain.WinnerStat, 0)
	for rows.Next() {
		var s domain.WinnerStat
		if err := rows.Scan(&s.Name, &s.Wins, &s.LastWin); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func scanMatches(rows pgx.Rows) ([]*domain.MatchRecord, error) {
	matches := make([]*domain.MatchRecord, 0)
	for rows.Next() {
		var m domain.MatchRecord
		if err := rows.Scan(&m.ID, &m.RoomCode, &m.Player1, &m.Player2, &m.Score1, &m.Score2, &m.Winner, &m.FinishedAt); err != nil {
			return nil, err
		}
		matches = append(matches, &m)
	}
	return matches, rows.Err()
}
