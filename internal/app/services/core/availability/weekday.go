package availability

import (
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/exceptions"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dateRegex = regexp.MustCompile(constvars.RegexDateYYYYMMDD)

// ResolveWeekday maps a YYYY-MM-DD date to its weekday token. The date is
// built as local midnight in loc from its integer parts, so the weekday
// never shifts the way a UTC parse of the same string can.
func ResolveWeekday(date string, loc *time.Location) (string, error) {
	day, err := LocalDate(date, loc)
	if err != nil {
		return "", err
	}
	return constvars.WeekdayTokens[day.Weekday()], nil
}

// LocalDate returns local midnight of date in loc. Out of range parts such
// as 2024-02-30 are rejected instead of rolling over into the next month.
func LocalDate(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if !dateRegex.MatchString(date) {
		return time.Time{}, exceptions.ErrInvalidDate(errors.New("date must match YYYY-MM-DD"), date)
	}

	parts := strings.Split(date, "-")
	year, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	dayOfMonth, _ := strconv.Atoi(parts[2])

	day := time.Date(year, time.Month(month), dayOfMonth, 0, 0, 0, 0, loc)
	if day.Year() != year || int(day.Month()) != month || day.Day() != dayOfMonth {
		return time.Time{}, exceptions.ErrInvalidDate(errors.New("date does not exist in the calendar"), date)
	}
	return day, nil
}
