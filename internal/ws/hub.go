package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"passball/internal/domain"
	"passball/internal/game"
	"passball/internal/identity"
	"passball/internal/logger"
	"passball/internal/metrics"
	"passball/internal/room"
)

const recordTimeout = 5 * time.Second

// MatchRecorder сохраняет итог завершенного матча
type MatchRecorder interface {
	Create(ctx context.Context, m *domain.MatchRecord) error
}

type clientEvent struct {
	client *Client
	raw    []byte
}

// Hub - маршрутизатор событий. Реестр комнат, имена и клиенты меняются
// только в горутине Run, поэтому события обрабатываются строго по одному.
type Hub struct {
	registry *room.Registry
	names    *identity.Table
	clients  map[domain.ParticipantID]*Client

	register   chan *Client
	unregister chan *Client
	inbound    chan clientEvent
	listings   chan chan []room.Listing
	done       chan struct{}

	recorder MatchRecorder
	metrics  *metrics.Metrics
	log      *slog.Logger
	records  sync.WaitGroup
}

type HubOption func(*Hub)

func WithRegistry(r *room.Registry) HubOption {
	return func(h *Hub) { h.registry = r }
}

func WithRecorder(r MatchRecorder) HubOption {
	return func(h *Hub) { h.recorder = r }
}

func WithMetrics(m *metrics.Metrics) HubOption {
	return func(h *Hub) { h.metrics = m }
}

func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		registry:   room.NewRegistry(),
		names:      identity.NewTable(),
		clients:    make(map[domain.ParticipantID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan clientEvent, 256),
		listings:   make(chan chan []room.Listing),
		done:       make(chan struct{}),
		log:        logger.Component("hub"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run обрабатывает события до отмены ctx
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	h.log.Info("hub started")

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case c := <-h.register:
			h.handleRegister(c)
		case c := <-h.unregister:
			h.handleUnregister(c)
		case ev := <-h.inbound:
			h.handleEvent(ev.client, ev.raw)
		case reply := <-h.listings:
			reply <- h.registry.ListPublicOpen(h.names)
		}
	}
}

// Register, Unregister и Dispatch вызываются из горутин клиентов
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) Dispatch(c *Client, raw []byte) {
	select {
	case h.inbound <- clientEvent{client: c, raw: raw}:
	case <-h.done:
	}
}

// PublicRooms возвращает публичный список комнат для HTTP API
func (h *Hub) PublicRooms(ctx context.Context) ([]room.Listing, error) {
	reply := make(chan []room.Listing, 1)
	select {
	case h.listings <- reply:
	case <-h.done:
		return nil, errors.New("hub stopped")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case list := <-reply:
		return list, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Wait ждет фоновые записи истории матчей
func (h *Hub) Wait() {
	h.records.Wait()
}

func (h *Hub) shutdown() {
	for id, c := range h.clients {
		close(c.Send)
		delete(h.clients, id)
	}
	h.log.Info("hub stopped")
}

func (h *Hub) handleRegister(c *Client) {
	h.clients[c.ID] = c
	h.metrics.ConnectionOpened()
	h.log.Debug("client registered", "participant", c.ID)
	h.send(c, Message{Type: EventConnected, Payload: ConnectedPayload{ID: string(c.ID)}})
}

// handleUnregister закрывает подключение, удаляет имя и комнаты участника.
// Оставшийся игрок получает opponent_left.
func (h *Hub) handleUnregister(c *Client) {
	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	delete(h.clients, c.ID)
	close(c.Send)
	h.metrics.ConnectionClosed()

	name := h.names.Name(c.ID)
	removed := false
	for {
		r, ok := h.registry.FindByParticipant(c.ID)
		if !ok {
			break
		}
		h.registry.Remove(r.Code)
		removed = true
		h.log.Info("room closed on disconnect", "room", r.Code, "participant", c.ID)

		for _, p := range r.Participants {
			if p == c.ID {
				continue
			}
			if other, ok := h.clients[p]; ok {
				h.send(other, Message{Type: EventOpponentLeft, Payload: OpponentLeftPayload{Name: name}})
			}
		}
	}
	h.names.Remove(c.ID)

	if removed {
		h.broadcastRoomList()
	}
}

func (h *Hub) handleEvent(c *Client, raw []byte) {
	if _, ok := h.clients[c.ID]; !ok {
		return
	}

	var msg inboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.log.Debug("malformed frame dropped", "participant", c.ID, "error", err)
		h.metrics.EventDropped("malformed")
		return
	}

	switch msg.Type {
	case EventSetName:
		h.onSetName(c, msg.Payload)
	case EventCreateRoom:
		h.onCreateRoom(c, msg.Payload)
	case EventJoinRoom:
		h.onJoinRoom(c, msg.Payload)
	case EventTossCall:
		h.onTossCall(c, msg.Payload)
	case EventTossProceed:
		h.onTossProceed(c)
	case EventTossDecide:
		h.onTossDecide(c, msg.Payload)
	case EventPlay:
		h.onPlay(c, msg.Payload)
	default:
		// тип не попадает в метку метрики как есть
		h.log.Debug("unknown event dropped", "participant", c.ID, "event", msg.Type)
		h.metrics.EventDropped("unknown")
	}
}

// drop - событие игнорируется без ответа отправителю
func (h *Hub) drop(c *Client, event string, err error) {
	h.log.Debug("event dropped", "participant", c.ID, "event", event, "reason", err)
	h.metrics.EventDropped(event)
}

func (h *Hub) onSetName(c *Client, payload json.RawMessage) {
	name, ok := decodeString(payload)
	if !ok && len(payload) != 0 && string(payload) != "null" {
		h.drop(c, EventSetName, errors.New("name must be a string"))
		return
	}
	h.names.Set(c.ID, name)
	h.send(c, Message{Type: EventRoomList, Payload: h.registry.ListPublicOpen(h.names)})
}

func (h *Hub) onCreateRoom(c *Client, payload json.RawMessage) {
	public, ok := decodeBool(payload)
	if !ok {
		h.drop(c, EventCreateRoom, errors.New("visibility must be a bool"))
		return
	}

	code := h.registry.Create(c.ID, domain.VisibilityFromFlag(public))
	h.metrics.RoomCreated()
	h.log.Info("room created", "room", code, "host", c.ID, "public", public)

	h.send(c, Message{Type: EventRoomCreated, Payload: code})
	h.broadcastRoomList()
}

func (h *Hub) onJoinRoom(c *Client, payload json.RawMessage) {
	code, _ := decodeString(payload)

	session, err := h.registry.Join(code, c.ID)
	if err != nil {
		h.metrics.Joined(false)
		h.log.Debug("join rejected", "room", code, "participant", c.ID, "error", err)
		h.send(c, Message{Type: EventJoinError, Payload: joinErrorText})
		return
	}
	h.metrics.Joined(true)

	r, _ := h.registry.Get(code)
	h.log.Info("room ready", "room", code, "host", r.Host(), "guest", c.ID)

	players := session.Players()
	h.toRoom(r, Message{Type: EventRoomReady, Payload: RoomReadyPayload{
		Players:  []string{h.names.Name(players[0]), h.names.Name(players[1])},
		Caller:   h.names.Name(session.TossCaller()),
		CallerID: string(session.TossCaller()),
	}})
	h.broadcastRoomList()
}

// sessionOf - комната и сессия отправителя, если матч уже идет
func (h *Hub) sessionOf(c *Client) (*room.Room, *game.Session, bool) {
	r, ok := h.registry.FindByParticipant(c.ID)
	if !ok || r.Session == nil {
		return nil, nil, false
	}
	return r, r.Session, true
}

func (h *Hub) onTossCall(c *Client, payload json.RawMessage) {
	r, s, ok := h.sessionOf(c)
	if !ok {
		h.drop(c, EventTossCall, errors.New("no session"))
		return
	}
	pick, _ := decodeString(payload)

	res, err := s.CallToss(c.ID, pick)
	if err != nil {
		h.drop(c, EventTossCall, err)
		return
	}
	h.log.Info("toss called", "room", r.Code, "pick", pick, "number", res.Number, "winner", res.Winner)

	h.toRoom(r, Message{Type: EventTossResult, Payload: TossResultPayload{
		Number: res.Number,
		Winner: h.names.Name(res.Winner),
	}})
	h.broadcastView(r)
}

func (h *Hub) onTossProceed(c *Client) {
	r, s, ok := h.sessionOf(c)
	if !ok {
		h.drop(c, EventTossProceed, errors.New("no session"))
		return
	}
	if err := s.Proceed(c.ID); err != nil {
		h.drop(c, EventTossProceed, err)
		return
	}
	h.broadcastView(r)
}

func (h *Hub) onTossDecide(c *Client, payload json.RawMessage) {
	r, s, ok := h.sessionOf(c)
	if !ok {
		h.drop(c, EventTossDecide, errors.New("no session"))
		return
	}
	choice, ok := decodeString(payload)
	if !ok {
		h.drop(c, EventTossDecide, errors.New("choice must be a string"))
		return
	}
	if err := s.Decide(c.ID, choice); err != nil {
		h.drop(c, EventTossDecide, err)
		return
	}
	h.broadcastView(r)
}

func (h *Hub) onPlay(c *Client, payload json.RawMessage) {
	r, s, ok := h.sessionOf(c)
	if !ok {
		h.drop(c, EventPlay, errors.New("no session"))
		return
	}
	move, ok := decodeMove(payload)
	if !ok {
		h.drop(c, EventPlay, errors.New("move must be a scalar"))
		return
	}

	round, err := s.Play(c.ID, move)
	if err != nil {
		h.drop(c, EventPlay, err)
		return
	}
	if round == nil {
		// ждем ход соперника
		return
	}

	h.metrics.RoundResolved(string(round.Phase), string(round.Outcome))
	h.log.Debug("round resolved", "room", r.Code, "phase", round.Phase, "outcome", round.Outcome,
		"pass_count", s.PassCount(), "next_phase", s.Phase())
	h.broadcastView(r)

	if s.IsOver() {
		h.metrics.GameFinished()
		h.recordMatch(r, s)
	}
}

// recordMatch пишет итог в историю в фоне, не блокируя цикл событий
func (h *Hub) recordMatch(r *room.Room, s *game.Session) {
	players := s.Players()
	winner, _ := s.Winner()
	rec := &domain.MatchRecord{
		RoomCode:   r.Code,
		Player1:    h.names.Name(players[0]),
		Player2:    h.names.Name(players[1]),
		Score1:     s.Score(players[0]),
		Score2:     s.Score(players[1]),
		Winner:     h.names.Name(winner),
		FinishedAt: time.Now().UTC(),
	}
	h.log.Info("game over", "room", r.Code, "winner", winner, "score1", rec.Score1, "score2", rec.Score2)

	if h.recorder == nil {
		return
	}
	h.records.Add(1)
	go func() {
		defer h.records.Done()
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := h.recorder.Create(ctx, rec); err != nil {
			h.log.Error("failed to record match", "room", rec.RoomCode, "error", err)
		}
	}()
}

func (h *Hub) broadcastView(r *room.Room) {
	h.toRoom(r, Message{Type: EventGameUpdate, Payload: game.Project(r.Session, h.names)})
}

func (h *Hub) broadcastRoomList() {
	h.toAll(Message{Type: EventRoomList, Payload: h.registry.ListPublicOpen(h.names)})
}

func (h *Hub) toRoom(r *room.Room, msg Message) {
	data, ok := h.encode(msg)
	if !ok {
		return
	}
	for _, p := range r.Participants {
		if c, ok := h.clients[p]; ok {
			h.deliver(c, msg.Type, data)
		}
	}
}

func (h *Hub) toAll(msg Message) {
	data, ok := h.encode(msg)
	if !ok {
		return
	}
	for _, c := range h.clients {
		h.deliver(c, msg.Type, data)
	}
}

func (h *Hub) send(c *Client, msg Message) {
	if data, ok := h.encode(msg); ok {
		h.deliver(c, msg.Type, data)
	}
}

func (h *Hub) encode(msg Message) ([]byte, bool) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("marshal error", "type", msg.Type, "error", err)
		return nil, false
	}
	return data, true
}

// deliver не блокирует цикл событий: при переполненном буфере кадр теряется
func (h *Hub) deliver(c *Client, event string, data []byte) {
	select {
	case c.Send <- data:
	default:
		h.log.Warn("send buffer full, frame dropped", "participant", c.ID, "type", event)
	}
}
