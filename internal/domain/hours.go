package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// closingSoonWindow - за сколько до закрытия заведение считается "закрывается скоро"
const closingSoonWindow = 30 * time.Minute

// OpenState - статус работы заведения на момент now
type OpenState string

const (
	OpenStateUnknown     OpenState = "Timings N/A"
	OpenStateOpen        OpenState = "Open now"
	OpenStateClosingSoon OpenState = "Closing soon"
	OpenStateClosed      OpenState = "Closed"
)

// Clock - время суток
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock разбирает "9:30 PM", "12:05 am" или "21:30"
func ParseClock(s string) (Clock, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Clock{}, false
	}

	parts := strings.Fields(s)
	hm := strings.SplitN(parts[0], ":", 2)
	if len(hm) != 2 {
		return Clock{}, false
	}

	hour, err := strconv.Atoi(hm[0])
	if err != nil {
		return Clock{}, false
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil {
		return Clock{}, false
	}

	if len(parts) > 1 {
		switch strings.ToUpper(parts[1]) {
		case "PM":
			if hour < 12 {
				hour += 12
			}
		case "AM":
			if hour == 12 {
				hour = 0
			}
		}
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, false
	}
	return Clock{Hour: hour, Minute: minute}, true
}

// FormatClock переводит "21:05" в "9:05 PM"
func FormatClock(s string) string {
	c, ok := ParseClock(s)
	if !ok {
		return ""
	}
	ampm := "AM"
	if c.Hour >= 12 {
		ampm = "PM"
	}
	hour := c.Hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, c.Minute, ampm)
}

// TodayTiming возвращает время открытия и закрытия на день now
func TodayTiming(h OpeningHours, now time.Time) (string, string) {
	if h.OpeningTime != "" && h.ClosingTime != "" {
		return h.OpeningTime, h.ClosingTime
	}

	timing, ok := h.Weekly[now.Weekday().String()]
	if !ok || !strings.Contains(timing, "–") {
		return "", ""
	}

	parts := strings.SplitN(timing, "–", 2)
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

// OpenStatus вычисляет статус относительно now. Окно привязано к сегодняшнему
// времени открытия; если закрытие не позже открытия, оно переносится на следующий день.
func OpenStatus(openingTime, closingTime string, now time.Time) OpenState {
	open, ok := ParseClock(openingTime)
	if !ok {
		return OpenStateUnknown
	}
	closing, ok := ParseClock(closingTime)
	if !ok {
		return OpenStateUnknown
	}

	openAt := time.Date(now.Year(), now.Month(), now.Day(), open.Hour, open.Minute, 0, 0, now.Location())
	closeAt := time.Date(now.Year(), now.Month(), now.Day(), closing.Hour, closing.Minute, 0, 0, now.Location())
	if !closeAt.After(openAt) {
		closeAt = closeAt.AddDate(0, 0, 1)
	}

	if now.Before(openAt) || now.After(closeAt) {
		return OpenStateClosed
	}
	if closeAt.Sub(now) <= closingSoonWindow {
		return OpenStateClosingSoon
	}
	return OpenStateOpen
}

// FormatTimings - "9:00 AM – 10:00 PM" или "Timings N/A"
func FormatTimings(openingTime, closingTime string) string {
	open, closing := FormatClock(openingTime), FormatClock(closingTime)
	if open == "" || closing == "" {
		return string(OpenStateUnknown)
	}
	return open + " – " + closing
}
