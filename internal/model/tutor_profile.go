package model

type TutorProfile struct {
	ID           string         `json:"id"`
	UserID       string         `json:"userId"`
	Title        string         `json:"title"`
	Bio          string         `json:"bio"`
	HourlyRate   float64        `json:"hourlyRate"` // в единицах валюты за час, >= 0
	Phone        string         `json:"phone"`
	Education    string         `json:"education"`
	Experience   int            `json:"experience"` // в годах
	Subjects     []string       `json:"subjects"`   // свободный текст, не связан с Category
	Availability []Availability `json:"availability,omitempty"`

	User *UserRef `json:"user,omitempty"`
}

// TeachesSubject проверяет что предмет заявлен репетитором
func (p *TutorProfile) TeachesSubject(subject string) bool {
	for _, s := range p.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}

// Availability еженедельное окно доступности репетитора
type Availability struct {
	ID          string `json:"id,omitempty"`
	TutorID     string `json:"tutorId,omitempty"`
	DayOfWeek   int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime   string `json:"startTime"` // "HH:MM"
	EndTime     string `json:"endTime"`   // "HH:MM"
	IsAvailable bool   `json:"isAvailable"`
}
