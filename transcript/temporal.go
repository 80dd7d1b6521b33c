package transcript

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/clmhq/clm/model"
)

var weekdayOrder = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

var weekdayNames = map[string]string{
	"sunday": "SUN", "monday": "MON", "tuesday": "TUE", "wednesday": "WED",
	"thursday": "THU", "friday": "FRI", "saturday": "SAT",
}

var reTimeOfDay = regexp.MustCompile(`(?i)\b(\d{1,2})(:\d{2})?\s?(am|pm)?\b`)

var numberWordValues = map[string]int{
	"a": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

var reDuration = regexp.MustCompile(`(?i)\b(?:for|past|last|over|around)?\s*(\d+|a|one|two|three|four|five|six|seven|eight|nine|ten)\s+(day|week|month)s?\b`)
var reDateRangeWeekday = regexp.MustCompile(`(?i)\b(?:from|between)\s+(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\s+(?:to|and)\s+(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)
var reDateRangeTime = regexp.MustCompile(`(?i)\b(?:from|between)\s+(\d{1,2})\s*(am|pm)?\s+(?:to|and)\s+(\d{1,2})\s*(am|pm)?\b`)
var reSince = regexp.MustCompile(`(?i)\bsince\b`)

// ExtractTemporal mines a structured digest of days, times, duration,
// frequency, and pattern from a text segment.
func ExtractTemporal(text string) model.TemporalPattern {
	tl := strings.ToLower(text)
	tp := model.TemporalPattern{}

	tp.Days = extractDays(tl)
	tp.Times = extractTimes(tl)
	tp.Duration = extractDuration(tl, tp.Days)
	if tp.Duration == "" {
		tp.Duration = extractDateRangeDuration(tl)
	}
	tp.Frequency = extractFrequency(tl, tp.Duration)
	if len(tp.Times) > 0 {
		tp.Pattern = strings.Join(tp.Times, "+")
	}

	return tp
}

var weekdayFullOrder = []string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

func extractDays(tl string) []string {
	var out []string
	for _, name := range weekdayFullOrder {
		if strings.Contains(tl, name) {
			out = append(out, weekdayNames[name])
		}
	}
	return out
}

func extractTimes(tl string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, m := range reTimeOfDay.FindAllStringSubmatch(tl, -1) {
		hour, err := strconv.Atoi(m[1])
		if err != nil || hour > 23 {
			continue
		}
		minute := "00"
		if m[2] != "" {
			minute = strings.TrimPrefix(m[2], ":")
		}
		meridiem := strings.ToLower(m[3])
		switch meridiem {
		case "pm":
			if hour != 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		default:
			if hour == 0 || hour > 12 {
				continue
			}
		}
		formatted := padTwo(hour) + ":" + minute
		if _, ok := seen[formatted]; !ok {
			seen[formatted] = struct{}{}
			out = append(out, formatted)
		}
	}
	sortStrings(out)
	return out
}

func padTwo(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func extractDuration(tl string, days []string) string {
	if m := reDuration.FindStringSubmatch(tl); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			n = numberWordValues[m[1]]
		}
		if n > 0 {
			unit := map[string]string{"day": "d", "week": "w", "month": "m"}[m[2]]
			return strconv.Itoa(n) + unit
		}
	}
	if reSince.MatchString(tl) && len(days) > 0 {
		return strconv.Itoa(len(days)) + "d"
	}
	return ""
}

func extractFrequency(tl, duration string) string {
	switch {
	case strings.Contains(tl, "twice"):
		return "2x_daily"
	case strings.Contains(tl, "every") || strings.Contains(tl, "each"):
		return "1x_daily"
	}
	if duration == "" {
		return ""
	}
	n, unit := splitDuration(duration)
	if n <= 0 {
		return ""
	}
	if unit == "w" {
		return strconv.Itoa(n) + "x_weekly"
	}
	return strconv.Itoa(n) + "x_daily"
}

func splitDuration(d string) (int, string) {
	if d == "" {
		return 0, ""
	}
	unit := d[len(d)-1:]
	n, err := strconv.Atoi(d[:len(d)-1])
	if err != nil {
		return 0, ""
	}
	return n, unit
}

// extractDateRangeDuration handles the "from|between X to|and Y"
// pattern: two weekdays convert to a day-count duration, two times to
// an hour-count one.
func extractDateRangeDuration(tl string) string {
	if m := reDateRangeWeekday.FindStringSubmatch(tl); m != nil {
		return strconv.Itoa(dateRangeDays(m[1], m[2])) + "d"
	}
	if m := reDateRangeTime.FindStringSubmatch(tl); m != nil {
		h1, err1 := strconv.Atoi(m[1])
		h2, err2 := strconv.Atoi(m[3])
		if err1 == nil && err2 == nil {
			diff := h2 - h1
			if diff < 0 {
				diff += 12
			}
			return strconv.Itoa(diff) + "h"
		}
	}
	return ""
}

// dateRangeDays computes the inclusive day span between two weekday
// names, wrapping modulo 7.
func dateRangeDays(from, to string) int {
	fi, ti := weekdayIndex(from), weekdayIndex(to)
	if fi < 0 || ti < 0 {
		return 0
	}
	diff := ti - fi
	if diff < 0 {
		diff += 7
	}
	return diff + 1
}

func weekdayIndex(name string) int {
	for i, w := range weekdayOrder {
		if strings.HasPrefix(name, w) {
			return i
		}
	}
	return -1
}
