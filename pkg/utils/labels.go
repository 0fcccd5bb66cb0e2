package utils

import "time"

var weekdayAbbrevs = [7]string{"dom", "seg", "ter", "qua", "qui", "sex", "sáb"}

var monthAbbrevs = [12]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// WeekdayAbbrev returns the pt-BR weekday abbreviation used by chart labels.
func WeekdayAbbrev(d time.Weekday) string {
	return weekdayAbbrevs[int(d)]
}

// MonthAbbrev returns the pt-BR month abbreviation used by chart labels.
func MonthAbbrev(m time.Month) string {
	return monthAbbrevs[int(m)-1]
}
