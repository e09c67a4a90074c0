package models

import (
	"fmt"
	"time"
)

// Operating day for the alternative-slot grid: twelve one-hour candidate
// windows from 08:00 to 20:00.
const (
	DayStartHour = 8
	DayEndHour   = 20
)

// Slot is a (hall, date, start, end) tuple representing a reservable interval.
type Slot struct {
	HallName  string    `json:"hall_name"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}

// Overlaps reports whether two slots on the same hall and date collide.
// Half-open semantics: a slot ending exactly when another starts does not
// conflict. Times are zero-padded "HH:MM" so string comparison is correct.
func (s Slot) Overlaps(other Slot) bool {
	if s.HallName != other.HallName || !SameDay(s.Date, other.Date) {
		return false
	}
	return s.StartTime < other.EndTime && s.EndTime > other.StartTime
}

// GridSlots returns the fixed hourly candidate windows for a hall/date.
func GridSlots(hallName string, date time.Time) []Slot {
	date = NormalizeDate(date)
	slots := make([]Slot, 0, DayEndHour-DayStartHour)
	for hour := DayStartHour; hour < DayEndHour; hour++ {
		slots = append(slots, Slot{
			HallName:  hallName,
			Date:      date,
			StartTime: fmt.Sprintf("%02d:00", hour),
			EndTime:   fmt.Sprintf("%02d:00", hour+1),
		})
	}
	return slots
}

// NormalizeDate truncates a timestamp to day granularity so bookings compare
// on calendar date alone.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ValidClockTime reports whether s is a zero-padded 24h "HH:MM" string.
func ValidClockTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h <= 23 && m <= 59
}

// ValidTimeRange checks both endpoints and that the interval is non-empty.
func ValidTimeRange(start, end string) bool {
	return ValidClockTime(start) && ValidClockTime(end) && start < end
}

// EventStatusFor derives the read-time event status of a booking date:
// "live" when it falls on the current date, "upcoming" otherwise. Never
// persisted.
func EventStatusFor(bookingDate, now time.Time) string {
	if SameDay(bookingDate, now) {
		return "live"
	}
	return "upcoming"
}
