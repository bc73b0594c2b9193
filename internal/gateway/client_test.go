package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorhub/tutorhub_bot/internal/model"
)

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		json.NewEncoder(w).Encode([]model.Booking{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ListBookings(context.Background(), "tok123")

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestClientSkipsAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(model.AuthResponse{Token: "t"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), model.LoginCredentials{
		Email:    "a@b.c",
		Password: "secret",
	})

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientSurfacesServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Tutor is not available at this time"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.CreateBooking(context.Background(), "tok", CreateBookingRequest{})

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Tutor is not available at this time", apiErr.Message)
}

func TestClientFallbackErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ListBookings(context.Background(), "tok")

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Something went wrong", apiErr.Message)
}

func TestCancelBookingSendsIdempotencyKey(t *testing.T) {
	var gotKey, gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.CancelBooking(context.Background(), "tok", "b42", "key-1")

	require.NoError(t, err)
	assert.Equal(t, "key-1", gotKey)
	assert.Equal(t, "/bookings/b42/cancel", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
}

func TestClientDoesNotRetry(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ListBookings(context.Background(), "tok")

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestReplaceAvailabilityStripsSlotIdentity(t *testing.T) {
	var payload []map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.ReplaceAvailability(context.Background(), "tok", []model.Availability{
		{
			ID:          "slot-1",
			TutorID:     "tutor-1",
			DayOfWeek:   1,
			StartTime:   "09:00",
			EndTime:     "11:00",
			IsAvailable: true,
		},
	})

	require.NoError(t, err)
	require.Len(t, payload, 1)
	assert.NotContains(t, payload[0], "id")
	assert.NotContains(t, payload[0], "tutorId")
	assert.Equal(t, "09:00", payload[0]["startTime"])
}

func TestUpdateCategorySendsPut(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(model.Category{ID: "c1", Name: "Физика"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	category, err := c.UpdateCategory(context.Background(), "tok", "c1", CategoryData{
		Name: "Физика",
		Icon: "🧲",
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/admin/categories/c1", gotPath)
	assert.Equal(t, "Физика", gotBody["name"])
	assert.Equal(t, "🧲", gotBody["icon"])
	assert.Equal(t, "c1", category.ID)
}
