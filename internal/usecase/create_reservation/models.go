package create_reservation

import (
	"time"

	"github.com/matchtag/MT-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	GuestID         int64            // ID гостя
	BarID           int64            // ID бара
	TableID         *int64           // Желаемый стол (опционально; nil = подобрать автоматически)
	GuestName       string           // Имя гостя для посадки
	PartySize       int              // Размер компании
	Date            time.Time        // Дата бронирования (без времени)
	StartTime       types.TimeString // Время начала слота (например, "19:00")
	DurationMinutes int              // Длительность посадки; 0 = значение по умолчанию
	Notes           *string          // Дополнительные пожелания (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	BarID           int64            // ID бара
	GuestID         int64            // ID гостя
	GuestName       string           // Имя гостя
	PartySize       int              // Размер компании
	TableID         *int64           // Назначенный стол
	TableNumber     *int             // Номер назначенного стола
	TableCapacity   *int             // Вместимость назначенного стола
	ReservationDate time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования
	Notes           *string          // Пожелания

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
