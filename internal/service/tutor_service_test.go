package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorhub/tutorhub_bot/internal/gateway"
	"github.com/tutorhub/tutorhub_bot/internal/model"
	"go.uber.org/zap"
)

func mkTutor(id, name string, rate float64, experience int, subjects ...string) model.TutorProfile {
	return model.TutorProfile{
		ID:         id,
		HourlyRate: rate,
		Experience: experience,
		Subjects:   subjects,
		User:       &model.UserRef{ID: "u-" + id, Name: name},
	}
}

func TestFilterTutors(t *testing.T) {
	tutors := []model.TutorProfile{
		mkTutor("a", "Анна Петрова", 30, 5, "Математика"),
		mkTutor("b", "Борис Иванов", 60, 10, "Физика"),
		mkTutor("c", "Мария Сидорова", 45, 2, "Английский", "Математика"),
	}

	t.Run("query matches name", func(t *testing.T) {
		out := FilterTutors(tutors, SearchFilter{Query: "анна"})
		require.Len(t, out, 1)
		assert.Equal(t, "a", out[0].ID)
	})

	t.Run("query matches subject substring", func(t *testing.T) {
		out := FilterTutors(tutors, SearchFilter{Query: "матем"})
		require.Len(t, out, 2)
		assert.Equal(t, "a", out[0].ID)
		assert.Equal(t, "c", out[1].ID)
	})

	t.Run("price range is inclusive", func(t *testing.T) {
		min, max := 30.0, 45.0
		out := FilterTutors(tutors, SearchFilter{MinPrice: &min, MaxPrice: &max})
		require.Len(t, out, 2)
		assert.Equal(t, "a", out[0].ID)
		assert.Equal(t, "c", out[1].ID)
	})

	t.Run("query and price combine", func(t *testing.T) {
		min := 40.0
		out := FilterTutors(tutors, SearchFilter{Query: "математика", MinPrice: &min})
		require.Len(t, out, 1)
		assert.Equal(t, "c", out[0].ID)
	})

	t.Run("empty filter returns all", func(t *testing.T) {
		out := FilterTutors(tutors, SearchFilter{})
		assert.Len(t, out, 3)
	})

	t.Run("no matches", func(t *testing.T) {
		out := FilterTutors(tutors, SearchFilter{Query: "химия"})
		assert.Empty(t, out)
	})
}

func TestSortTutors(t *testing.T) {
	tutors := []model.TutorProfile{
		mkTutor("a", "A", 60, 3),
		mkTutor("b", "B", 30, 10),
		mkTutor("c", "C", 45, 5),
	}

	t.Run("price low", func(t *testing.T) {
		out := SortTutors(tutors, SortPriceLow, nil)
		assert.Equal(t, []string{"b", "c", "a"}, ids(out))
	})

	t.Run("price high", func(t *testing.T) {
		out := SortTutors(tutors, SortPriceHigh, nil)
		assert.Equal(t, []string{"a", "c", "b"}, ids(out))
	})

	t.Run("experience desc", func(t *testing.T) {
		out := SortTutors(tutors, SortExperience, nil)
		assert.Equal(t, []string{"b", "c", "a"}, ids(out))
	})

	t.Run("rating with map", func(t *testing.T) {
		ratings := map[string]float64{"a": 4.0, "b": 4.9, "c": 4.5}
		out := SortTutors(tutors, SortRating, ratings)
		assert.Equal(t, []string{"b", "c", "a"}, ids(out))
	})

	t.Run("rating without map keeps server order", func(t *testing.T) {
		out := SortTutors(tutors, SortRating, nil)
		assert.Equal(t, []string{"a", "b", "c"}, ids(out))
	})

	t.Run("input is not mutated", func(t *testing.T) {
		SortTutors(tutors, SortPriceLow, nil)
		assert.Equal(t, []string{"a", "b", "c"}, ids(tutors))
	})
}

func ids(tutors []model.TutorProfile) []string {
	out := make([]string, len(tutors))
	for i, t := range tutors {
		out[i] = t.ID
	}
	return out
}

func TestTeachesSubject(t *testing.T) {
	tutor := mkTutor("a", "A", 30, 5, "Математика", "Физика")

	assert.True(t, tutor.TeachesSubject("Математика"))
	assert.False(t, tutor.TeachesSubject("математика")) // точное совпадение
	assert.False(t, tutor.TeachesSubject("Химия"))
}

// Сервер адресует репетитора по userId во всех /tutors/:id запросах,
// поэтому карточка открывается по UserID из каталога, а не по ID профиля.
func TestDetailKeyedByUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tutors":
			json.NewEncoder(w).Encode([]model.TutorProfile{
				{ID: "p1", UserID: "u1", Subjects: []string{"Математика"}},
			})
		case "/tutors/u1":
			json.NewEncoder(w).Encode(model.TutorProfile{ID: "p1", UserID: "u1", Subjects: []string{"Математика"}})
		case "/tutors/u1/availability":
			json.NewEncoder(w).Encode([]model.Availability{})
		case "/reviews/tutor/u1":
			json.NewEncoder(w).Encode(model.TutorReviews{})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Tutor not found"})
		}
	}))
	defer srv.Close()

	svc := NewTutorService(gateway.NewClient(srv.URL), zap.NewNop())

	tutors, err := svc.List(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, tutors, 1)

	detail, err := svc.Detail(context.Background(), "tok", tutors[0].UserID)
	require.NoError(t, err)
	assert.Equal(t, "p1", detail.Profile.ID)

	// ID профиля сервер не знает
	_, err = svc.Detail(context.Background(), "tok", tutors[0].ID)
	require.Error(t, err)
}
