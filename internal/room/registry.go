// Package room - реестр комнат: создание по коду, вход второго игрока,
// публичный список и поиск комнаты участника.
package room

import (
	"errors"
	"strconv"
	"strings"

	"passball/internal/domain"
	"passball/internal/game"

	"github.com/google/uuid"
)

const (
	Capacity        = 2
	codeLength      = 6
	maxCodeAttempts = 8
)

// ErrRoomUnavailable - комнаты нет или она заполнена
var ErrRoomUnavailable = errors.New("room unavailable")

// Room - контейнер матча на двух участников
type Room struct {
	Code         string
	Visibility   domain.Visibility
	Participants []domain.ParticipantID // порядок входа, первый - хост
	Session      *game.Session          // создается при входе второго участника
}

func (r *Room) Host() domain.ParticipantID { return r.Participants[0] }
func (r *Room) Full() bool                 { return len(r.Participants) >= Capacity }

func (r *Room) Has(id domain.ParticipantID) bool {
	for _, p := range r.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// Listing - строка публичного списка комнат
type Listing struct {
	Code string `json:"code"`
	Host string `json:"host"`
}

// Registry владеет комнатами и их сессиями.
// Не потокобезопасен: вызывается только из горутины ws.Hub.
type Registry struct {
	rooms   map[string]*Room
	order   []string // порядок создания, для детерминированного списка и поиска
	seq     int64
	newCode func() string
	tosser  game.Tosser
}

type Option func(*Registry)

// WithCodeGenerator подменяет генератор кодов комнат
func WithCodeGenerator(gen func() string) Option {
	return func(r *Registry) { r.newCode = gen }
}

// WithTosser задает источник чисел жеребьевки для новых сессий
func WithTosser(t game.Tosser) Option {
	return func(r *Registry) { r.tosser = t }
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		rooms:   make(map[string]*Room),
		newCode: randomCode,
		tosser:  game.CryptoTosser{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// randomCode - 6 символов из uuid в верхнем регистре
func randomCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:codeLength])
}

// uniqueCode генерирует код заново при коллизии
func (r *Registry) uniqueCode() string {
	r.seq++
	code := r.newCode()
	for i := 1; r.exists(code); i++ {
		if i >= maxCodeAttempts {
			return code + strconv.FormatInt(r.seq, 10)
		}
		code = r.newCode()
	}
	return code
}

func (r *Registry) exists(code string) bool {
	_, ok := r.rooms[code]
	return ok
}

// Create регистрирует комнату с одним участником, без сессии
func (r *Registry) Create(host domain.ParticipantID, visibility domain.Visibility) string {
	code := r.uniqueCode()
	r.rooms[code] = &Room{
		Code:         code,
		Visibility:   visibility,
		Participants: []domain.ParticipantID{host},
	}
	r.order = append(r.order, code)
	return code
}

// Join добавляет второго участника и создает сессию (хост бросает жребий).
// При ошибке реестр не меняется.
func (r *Registry) Join(code string, participant domain.ParticipantID) (*game.Session, error) {
	room, ok := r.rooms[code]
	if !ok || room.Full() || room.Has(participant) {
		return nil, ErrRoomUnavailable
	}

	session, err := game.NewSession(room.Host(), participant, r.tosser)
	if err != nil {
		return nil, ErrRoomUnavailable
	}
	room.Participants = append(room.Participants, participant)
	room.Session = session
	return session, nil
}

func (r *Registry) Get(code string) (*Room, bool) {
	room, ok := r.rooms[code]
	return room, ok
}

// FindByParticipant - первая по времени создания комната, где есть участник
func (r *Registry) FindByParticipant(id domain.ParticipantID) (*Room, bool) {
	for _, code := range r.order {
		if room := r.rooms[code]; room.Has(id) {
			return room, true
		}
	}
	return nil, false
}

// ListPublicOpen - публичные комнаты, ожидающие второго игрока
func (r *Registry) ListPublicOpen(names game.NameResolver) []Listing {
	out := make([]Listing, 0)
	for _, code := range r.order {
		room := r.rooms[code]
		if room.Visibility != domain.VisibilityPublic || len(room.Participants) != 1 {
			continue
		}
		out = append(out, Listing{Code: room.Code, Host: names.Name(room.Host())})
	}
	return out
}

// Remove удаляет комнату вместе с сессией
func (r *Registry) Remove(code string) {
	if _, ok := r.rooms[code]; !ok {
		return
	}
	delete(r.rooms, code)
	for i, c := range r.order {
		if c == code {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Registry) Len() int { return len(r.rooms) }
