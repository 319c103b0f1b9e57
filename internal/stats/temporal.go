package stats

import (
	"sort"
	"time"
)

// All temporal bucketing happens in UTC, the zone the platform stores
// timestamps in. Mixing zone references across deployments would make cached
// results irreproducible.

const dateLayout = "2006-01-02"

var dayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// HourBucket counts submissions for one hour of day (0-23).
type HourBucket struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// DayOfWeekBucket counts submissions for one weekday; Monday is 0.
type DayOfWeekBucket struct {
	Day       string `json:"day"`
	DayNumber int    `json:"dayNumber"`
	Count     int    `json:"count"`
}

// DailyCount counts submissions for one calendar date (YYYY-MM-DD).
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TemporalResult holds the time-of-day and timeline aggregations for a set of
// submissions. ByHour always has exactly 24 entries, zero-filled; ByDayOfWeek
// always has 7; DailyTimeline only carries dates with activity, ascending.
// Peak markers are nil when there are no submissions.
type TemporalResult struct {
	TotalSubmissions         int               `json:"totalSubmissions"`
	FirstSubmission          *time.Time        `json:"firstSubmission,omitempty"`
	LastSubmission           *time.Time        `json:"lastSubmission,omitempty"`
	UniqueDays               int               `json:"uniqueDays"`
	AverageSubmissionsPerDay float64           `json:"averageSubmissionsPerDay"`
	ByHour                   []HourBucket      `json:"submissionsByHour"`
	ByDayOfWeek              []DayOfWeekBucket `json:"submissionsByDayOfWeek"`
	DailyTimeline            []DailyCount      `json:"dailyTimeline"`
	PeakHour                 *HourBucket       `json:"peakHour,omitempty"`
	PeakDay                  *DailyCount       `json:"peakDay,omitempty"`
}

// Temporal buckets every timestamp by hour of day, weekday and calendar date,
// and derives peak-activity markers. Hour ties resolve to the earliest hour,
// date ties to the earliest date.
func Temporal(timestamps []time.Time) TemporalResult {
	res := TemporalResult{
		TotalSubmissions: len(timestamps),
		ByHour:           make([]HourBucket, 24),
		ByDayOfWeek:      make([]DayOfWeekBucket, 7),
		DailyTimeline:    []DailyCount{},
	}
	for h := range res.ByHour {
		res.ByHour[h].Hour = h
	}
	for d := range res.ByDayOfWeek {
		res.ByDayOfWeek[d].Day = dayNames[d]
		res.ByDayOfWeek[d].DayNumber = d
	}

	if len(timestamps) == 0 {
		return res
	}

	daily := make(map[string]int)
	first, last := timestamps[0], timestamps[0]
	for _, ts := range timestamps {
		ts = ts.UTC()
		res.ByHour[ts.Hour()].Count++
		res.ByDayOfWeek[mondayIndexed(ts.Weekday())].Count++
		daily[ts.Format(dateLayout)]++

		if ts.Before(first) {
			first = ts
		}
		if ts.After(last) {
			last = ts
		}
	}

	dates := make([]string, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		res.DailyTimeline = append(res.DailyTimeline, DailyCount{Date: d, Count: daily[d]})
	}

	res.FirstSubmission = &first
	res.LastSubmission = &last
	res.UniqueDays = len(daily)
	res.AverageSubmissionsPerDay = float64(len(timestamps)) / float64(len(daily))

	peakHour := res.ByHour[0]
	for _, b := range res.ByHour[1:] {
		if b.Count > peakHour.Count {
			peakHour = b
		}
	}
	res.PeakHour = &peakHour

	peakDay := res.DailyTimeline[0]
	for _, d := range res.DailyTimeline[1:] {
		if d.Count > peakDay.Count {
			peakDay = d
		}
	}
	res.PeakDay = &peakDay

	return res
}

// mondayIndexed converts Go's Sunday-first weekday to the platform's
// Monday=0 convention.
func mondayIndexed(d time.Weekday) int {
	return (int(d) + 6) % 7
}
