package complaint

import (
	"strconv"
	"strings"
	"time"
)

// MonthAbbrevs are the fixed month labels used by charts and reports.
var MonthAbbrevs = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

var englishMonths = [12]string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// WeeksPerMonth is the number of week-of-month buckets.
const WeeksPerMonth = 5

// MonthAbbrev returns the 3-letter label of m, or "" when m is out of range.
func MonthAbbrev(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return MonthAbbrevs[m-1]
}

// ParseMonthAbbrev accepts a month label ("Fev", "feb", "FEV"), a full
// month name prefix or a month number 1-12.
func ParseMonthAbbrev(s string) (time.Month, bool) {
	key := Fold(s)
	if key == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(key); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}
	if len(key) < 3 {
		return 0, false
	}
	prefix := key[:3]
	for i := range MonthAbbrevs {
		if strings.ToLower(MonthAbbrevs[i]) == prefix || englishMonths[i] == prefix {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// WeekOfMonth buckets t into fixed 7-day blocks starting on day 1, so the
// result is always in 1..5. It is not an ISO week.
func WeekOfMonth(t time.Time) int {
	return (t.Day()-1)/7 + 1
}

// WeekLabel renders a week ordinal as "2ª".
func WeekLabel(n int) string {
	return strconv.Itoa(n) + "ª"
}

// ParseWeekLabel accepts "2ª", "2a", "2", "S2" or "semana 2".
func ParseWeekLabel(s string) (int, bool) {
	key := Fold(s)
	key = strings.TrimPrefix(key, "semana")
	key = strings.TrimPrefix(key, "s")
	key = strings.TrimSpace(key)
	key = strings.TrimSuffix(key, "ª")
	key = strings.TrimSuffix(key, "º")
	key = strings.TrimSuffix(key, "a")
	key = strings.TrimSuffix(key, "o")
	n, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil || n < 1 || n > WeeksPerMonth {
		return 0, false
	}
	return n, true
}

// ParseYear parses a year label such as "2024".
func ParseYear(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 9999 {
		return 0, false
	}
	return n, true
}
