package get_availability

import (
	"time"

	"github.com/matchtag/MT-ReservationService/internal/domain"
)

// Request модель запроса на расчёт доступности
type Request struct {
	BarID           int64     // ID бара
	Date            time.Time // Дата для расчёта (без времени)
	PartySize       int       // Размер компании
	DurationMinutes int       // Длительность посадки; 0 = значение по умолчанию (120 минут)
}

// Response модель ответа со списком слотов
type Response struct {
	BarID           int64             // ID бара
	Date            time.Time         // Дата, на которую запрашивалась доступность
	PartySize       int               // Размер компании
	DurationMinutes int               // Фактически использованная длительность
	Slots           []domain.TimeSlot // Слоты по возрастанию времени начала
}
