package util

import (
	"fmt"
	"time"
)

const (
	civilDateLayout   = "2006-01-02"
	displayDateLayout = "2006/01/02"
)

// LocationFor builds a fixed-offset location. The target civil timezone is an
// explicit parameter everywhere so "today" never depends on the host timezone.
func LocationFor(offsetHours int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*60*60)
}

// CivilDate returns the calendar date of t as seen from the given UTC offset,
// in YYYY-MM-DD form.
func CivilDate(t time.Time, offsetHours int) string {
	return t.In(LocationFor(offsetHours)).Format(civilDateLayout)
}

// CivilDateDisplay is CivilDate with the display separator (YYYY/MM/DD). Both
// forms always name the same calendar day for the same instant.
func CivilDateDisplay(t time.Time, offsetHours int) string {
	return t.In(LocationFor(offsetHours)).Format(displayDateLayout)
}

func TodayAt(offsetHours int) string {
	return CivilDate(time.Now(), offsetHours)
}

func TodayDisplayAt(offsetHours int) string {
	return CivilDateDisplay(time.Now(), offsetHours)
}
