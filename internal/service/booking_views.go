package service

import (
	"sort"
	"time"

	"github.com/tutorhub/tutorhub_bot/internal/model"
)

// Чистые проекции над коллекцией записей. Пересчитываются на каждый показ,
// локально ничего не сохраняется. Сортировки стабильные: при равных датах
// сохраняется порядок выдачи сервера.

// Today возвращает текущую дату в формате записи ("YYYY-MM-DD")
func Today() string {
	return time.Now().Format("2006-01-02")
}

// Upcoming подтверждённые записи с датой не раньше today, по дате вверх.
// Запись с датой ровно today считается предстоящей.
func Upcoming(bookings []model.Booking, today string) []model.Booking {
	var out []model.Booking
	for _, b := range bookings {
		if b.Status == model.BookingStatusConfirmed && b.Date >= today {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// Pending записи в ожидании подтверждения, по дате вверх
func Pending(bookings []model.Booking) []model.Booking {
	var out []model.Booking
	for _, b := range bookings {
		if b.Status == model.BookingStatusPending {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// Past завершённые и отменённые записи, по дате вниз
func Past(bookings []model.Booking) []model.Booking {
	var out []model.Booking
	for _, b := range bookings {
		if b.Status.Terminal() {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// Revenue сумма totalAmount строго по завершённым записям
func Revenue(bookings []model.Booking) float64 {
	var sum float64
	for _, b := range bookings {
		if b.Status == model.BookingStatusCompleted {
			sum += b.TotalAmount
		}
	}
	return sum
}

// ReviewableBookings записи, к которым можно оставить отзыв
func ReviewableBookings(bookings []model.Booking) []model.Booking {
	var out []model.Booking
	for _, b := range bookings {
		if Reviewable(&b) {
			out = append(out, b)
		}
	}
	return out
}

// StudentStats сводка для личного кабинета студента
type StudentStats struct {
	TotalSessions    int
	UpcomingSessions int
	PendingSessions  int
}

func ComputeStudentStats(bookings []model.Booking) StudentStats {
	var stats StudentStats
	for _, b := range bookings {
		switch b.Status {
		case model.BookingStatusCompleted:
			stats.TotalSessions++
		case model.BookingStatusConfirmed:
			stats.UpcomingSessions++
		case model.BookingStatusPending:
			stats.PendingSessions++
		}
	}
	return stats
}

// AdminStats сводка для панели администратора
type AdminStats struct {
	TotalUsers    int
	TotalStudents int
	TotalTutors   int
	ActiveUsers   int
	TotalBookings int
	TotalRevenue  float64
}

func ComputeAdminStats(users []model.User, bookings []model.Booking) AdminStats {
	stats := AdminStats{
		TotalUsers:    len(users),
		TotalBookings: len(bookings),
		TotalRevenue:  Revenue(bookings),
	}
	for _, u := range users {
		switch u.Role {
		case model.RoleStudent:
			stats.TotalStudents++
		case model.RoleTutor:
			stats.TotalTutors++
		}
		if u.IsActive {
			stats.ActiveUsers++
		}
	}
	return stats
}
