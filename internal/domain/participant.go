package domain

// ParticipantID - идентификатор подключения, уникальный в пределах процесса
type ParticipantID string

// Видимость комнаты, задается при создании
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// VisibilityFromFlag переводит флаг create_room в видимость
func VisibilityFromFlag(public bool) Visibility {
	if public {
		return VisibilityPublic
	}
	return VisibilityPrivate
}
