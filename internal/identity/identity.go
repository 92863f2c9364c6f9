// Package identity хранит отображаемые имена подключений.
package identity

import "passball/internal/domain"

// DefaultName подставляется, если участник не задал имя
const DefaultName = "Player"

// Table - соответствие подключение -> имя.
// Не потокобезопасна: владелец (ws.Hub) работает в одной горутине.
type Table struct {
	names map[domain.ParticipantID]string
}

func NewTable() *Table {
	return &Table{names: make(map[domain.ParticipantID]string)}
}

// Set сохраняет имя; пустое имя заменяется на DefaultName
func (t *Table) Set(id domain.ParticipantID, name string) string {
	if name == "" {
		name = DefaultName
	}
	t.names[id] = name
	return name
}

// Lookup возвращает имя, если оно задано
func (t *Table) Lookup(id domain.ParticipantID) (string, bool) {
	name, ok := t.names[id]
	return name, ok
}

// Name возвращает имя или DefaultName
func (t *Table) Name(id domain.ParticipantID) string {
	if name, ok := t.names[id]; ok {
		return name
	}
	return DefaultName
}

func (t *Table) Remove(id domain.ParticipantID) {
	delete(t.names, id)
}

func (t *Table) Len() int { return len(t.names) }
