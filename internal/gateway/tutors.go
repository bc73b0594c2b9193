package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tutorhub/tutorhub_bot/internal/model"
)

// ListTutors возвращает профили репетиторов. Фильтры передаются как query string.
func (c *Client) ListTutors(ctx context.Context, token string, filters map[string]string) ([]model.TutorProfile, error) {
	path := "/tutors"
	if len(filters) > 0 {
		params := url.Values{}
		for k, v := range filters {
			params.Set(k, v)
		}
		path += "?" + params.Encode()
	}

	var tutors []model.TutorProfile
	if err := c.do(ctx, http.MethodGet, path, token, "", nil, &tutors); err != nil {
		return nil, fmt.Errorf("list tutors: %w", err)
	}
	return tutors, nil
}

// GetTutor возвращает профиль репетитора. Сервер адресует
// репетитора по userId, а не по ID профиля.
func (c *Client) GetTutor(ctx context.Context, token, id string) (*model.TutorProfile, error) {
	var tutor model.TutorProfile
	if err := c.do(ctx, http.MethodGet, "/tutors/"+id, token, "", nil, &tutor); err != nil {
		return nil, fmt.Errorf("get tutor: %w", err)
	}
	return &tutor, nil
}

// GetTutorAvailability возвращает недельные окна доступности репетитора
func (c *Client) GetTutorAvailability(ctx context.Context, token, id string) ([]model.Availability, error) {
	var slots []model.Availability
	if err := c.do(ctx, http.MethodGet, "/tutors/"+id+"/availability", token, "", nil, &slots); err != nil {
		return nil, fmt.Errorf("get tutor availability: %w", err)
	}
	return slots, nil
}

// TutorProfileUpdate изменяемые поля собственного профиля репетитора
type TutorProfileUpdate struct {
	Title      string   `json:"title,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	HourlyRate *float64 `json:"hourlyRate,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Education  string   `json:"education,omitempty"`
	Experience *int     `json:"experience,omitempty"`
	Subjects   []string `json:"subjects,omitempty"`
}

// UpdateTutorProfile обновляет собственный профиль репетитора
func (c *Client) UpdateTutorProfile(ctx context.Context, token string, update TutorProfileUpdate) (*model.TutorProfile, error) {
	var resp struct {
		Message string             `json:"message"`
		Tutor   model.TutorProfile `json:"tutor"`
	}
	if err := c.do(ctx, http.MethodPut, "/tutors/profile", token, "", update, &resp); err != nil {
		return nil, fmt.Errorf("update tutor profile: %w", err)
	}
	return &resp.Tutor, nil
}

type availabilityPayload struct {
	DayOfWeek   int    `json:"dayOfWeek"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// ReplaceAvailability целиком заменяет список окон доступности.
// Сервер ожидает массив без id и tutorId — они отбрасываются здесь.
func (c *Client) ReplaceAvailability(ctx context.Context, token string, slots []model.Availability) error {
	payload := make([]availabilityPayload, 0, len(slots))
	for _, s := range slots {
		payload = append(payload, availabilityPayload{
			DayOfWeek:   s.DayOfWeek,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			IsAvailable: s.IsAvailable,
		})
	}

	if err := c.do(ctx, http.MethodPut, "/tutors/availability", token, "", payload, nil); err != nil {
		return fmt.Errorf("replace availability: %w", err)
	}
	return nil
}
