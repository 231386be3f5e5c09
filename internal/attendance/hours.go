package attendance

import (
	"math"
	"time"
)

const millisPerHour = 3_600_000

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundHours rounds to two decimals and never returns a negative value.
func RoundHours(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return Round2(v)
}

// HoursBetween converts the millisecond delta between in and out to hours.
// Clock skew that would produce a negative delta yields 0.
func HoursBetween(in, out time.Time) float64 {
	ms := out.Sub(in).Milliseconds()
	if ms <= 0 {
		return 0
	}
	return RoundHours(float64(ms) / millisPerHour)
}

// DayHours is the hours of this record's own session, excluding carried hours.
func (r *Record) DayHours() float64 {
	if !r.IsCompleted() {
		return 0
	}
	return HoursBetween(*r.TimeIn, *r.TimeOut)
}

// RecomputeTotal sets TotalHours to today's session plus carried hours.
func (r *Record) RecomputeTotal() {
	r.TotalHours = RoundHours(r.DayHours() + r.PreviousDayHours)
}

// CarriedHours sums the own-day hours of earlier records that still count.
func CarriedHours(prior []Record, day time.Time) float64 {
	var total float64
	for i := range prior {
		rec := &prior[i]
		if !rec.AttendanceDate.Before(day) || !rec.CountsTowardHours() {
			continue
		}
		total += rec.DayHours()
	}
	return RoundHours(total)
}
