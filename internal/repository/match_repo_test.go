package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"passball/internal/db"
	"passball/internal/domain"

	"github.com/google/uuid"
)

// интеграционные тесты: нужен TEST_DATABASE_URL
func newTestRepo(t *testing.T) (*MatchRepository, context.Context) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL не задан")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	pool, err := db.Connect(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return NewMatchRepository(pool), ctx
}

func (r *MatchRepository) deleteByRoom(code string) {
	_, _ = r.db.Exec(context.Background(), `DELETE FROM matches WHERE room_code = $1`, code)
}

func TestMatchRepository_CreateAndGetRecent(t *testing.T) {
	repo, ctx := newTestRepo(t)

	code := "T" + uuid.NewString()[:5]
	t.Cleanup(func() { repo.deleteByRoom(code) })

	rec := &domain.MatchRecord{
		RoomCode: code,
		Player1:  "Alice",
		Player2:  "Bob",
		Score1:   3,
		Score2:   1,
		Winner:   "Alice",
	}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID == "" || rec.FinishedAt.IsZero() {
		t.Fatalf("ID и время должны заполняться: %+v", rec)
	}

	recent, err := repo.GetRecent(ctx, 50)
	if err != nil {
		t.Fatalf("get recent: %v", err)
	}
	for _, m := range recent {
		if m.ID == rec.ID {
			if m.Winner != "Alice" || m.Score1 != 3 || m.Score2 != 1 {
				t.Fatalf("сохранено %+v", m)
			}
			return
		}
	}
	t.Fatalf("матч %s не найден среди последних", rec.ID)
}

func TestMatchRepository_GetTopWinners(t *testing.T) {
	repo, ctx := newTestRepo(t)

	code := "T" + uuid.NewString()[:5]
	t.Cleanup(func() { repo.deleteByRoom(code) })

	// уникальное имя, чтобы не пересекаться с другими данными
	winner := "winner-" + code
	for i := 0; i < 2; i++ {
		err := repo.Create(ctx, &domain.MatchRecord{
			RoomCode: code,
			Player1:  winner,
			Player2:  "Bob",
			Score1:   3,
			Winner:   winner,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	top, err := repo.GetTopWinners(ctx, 1000)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	for _, s := range top {
		if s.Name == winner {
			if s.Wins != 2 {
				t.Fatalf("wins=%d", s.Wins)
			}
			return
		}
	}
	t.Fatalf("%s не найден в таблице лидеров", winner)
}
