package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tutorhub/tutorhub_bot/internal/gateway"
	"github.com/tutorhub/tutorhub_bot/internal/model"
	"go.uber.org/zap"
)

// SortKey ключ сортировки каталога репетиторов
type SortKey string

const (
	SortRating     SortKey = "rating"
	SortPriceLow   SortKey = "price_low"
	SortPriceHigh  SortKey = "price_high"
	SortExperience SortKey = "experience"
)

// SearchFilter клиентский фильтр каталога репетиторов
type SearchFilter struct {
	Query    string   // подстрока по имени или предмету, без учёта регистра
	MinPrice *float64 // нижняя граница hourlyRate
	MaxPrice *float64 // верхняя граница hourlyRate
}

type TutorService struct {
	gw     *gateway.Client
	logger *zap.Logger
}

func NewTutorService(gw *gateway.Client, logger *zap.Logger) *TutorService {
	return &TutorService{
		gw:     gw,
		logger: logger,
	}
}

// FilterTutors отбирает репетиторов по поисковой строке и диапазону цены
func FilterTutors(tutors []model.TutorProfile, filter SearchFilter) []model.TutorProfile {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	var out []model.TutorProfile
	for _, t := range tutors {
		if query != "" && !matchesQuery(&t, query) {
			continue
		}
		if filter.MinPrice != nil && t.HourlyRate < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && t.HourlyRate > *filter.MaxPrice {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesQuery(t *model.TutorProfile, query string) bool {
	if t.User != nil && strings.Contains(strings.ToLower(t.User.Name), query) {
		return true
	}
	for _, s := range t.Subjects {
		if strings.Contains(strings.ToLower(s), query) {
			return true
		}
	}
	return false
}

// SortTutors сортирует каталог по ключу. Сортировка стабильная.
// Для SortRating используются средние рейтинги по ID профиля;
// без карты рейтингов порядок выдачи сервера не меняется.
func SortTutors(tutors []model.TutorProfile, key SortKey, ratings map[string]float64) []model.TutorProfile {
	out := make([]model.TutorProfile, len(tutors))
	copy(out, tutors)

	switch key {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].HourlyRate < out[j].HourlyRate
		})
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].HourlyRate > out[j].HourlyRate
		})
	case SortExperience:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Experience > out[j].Experience
		})
	case SortRating:
		if len(ratings) > 0 {
			sort.SliceStable(out, func(i, j int) bool {
				return ratings[out[i].ID] > ratings[out[j].ID]
			})
		}
	}
	return out
}

// List возвращает каталог репетиторов
func (s *TutorService) List(ctx context.Context, token string) ([]model.TutorProfile, error) {
	return s.gw.ListTutors(ctx, token, nil)
}

// TutorDetail карточка репетитора: профиль, доступность и отзывы
type TutorDetail struct {
	Profile      *model.TutorProfile
	Availability []model.Availability
	Reviews      *model.TutorReviews
}

// Detail собирает карточку репетитора. Отзывы и доступность не фатальны:
// при ошибке карточка показывается без них.
func (s *TutorService) Detail(ctx context.Context, token, id string) (*TutorDetail, error) {
	profile, err := s.gw.GetTutor(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("tutor detail: %w", err)
	}

	detail := &TutorDetail{Profile: profile}

	if slots, err := s.gw.GetTutorAvailability(ctx, token, id); err == nil {
		detail.Availability = slots
	} else {
		s.logger.Warn("Failed to load tutor availability",
			zap.String("tutor_id", id), zap.Error(err))
	}

	if reviews, err := s.gw.GetTutorReviews(ctx, token, profile.UserID); err == nil {
		detail.Reviews = reviews
	} else {
		s.logger.Warn("Failed to load tutor reviews",
			zap.String("tutor_id", id), zap.Error(err))
	}

	return detail, nil
}

// AverageRatings собирает карту средних рейтингов для сортировки каталога.
// Ошибки по отдельным репетиторам пропускаются: рейтинг просто отсутствует.
func (s *TutorService) AverageRatings(ctx context.Context, token string, tutors []model.TutorProfile) map[string]float64 {
	ratings := make(map[string]float64, len(tutors))
	for _, t := range tutors {
		reviews, err := s.gw.GetTutorReviews(ctx, token, t.UserID)
		if err != nil {
			continue
		}
		if reviews.TotalReviews > 0 {
			ratings[t.ID] = reviews.AverageRating
		}
	}
	return ratings
}

// UpdateProfile обновляет собственный профиль репетитора
func (s *TutorService) UpdateProfile(ctx context.Context, token string, update gateway.TutorProfileUpdate) (*model.TutorProfile, error) {
	profile, err := s.gw.UpdateTutorProfile(ctx, token, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Tutor profile updated", zap.String("profile_id", profile.ID))
	return profile, nil
}
