package domain

import "fmt"

// PeriodKind tags the three period shapes a report can be scoped to.
type PeriodKind int

const (
	PeriodDateRange PeriodKind = iota
	PeriodMonth
	PeriodYear
)

// Period is the time window a report query covers. Exactly one shape is
// populated, selected by Kind. Dates are MM/DD/YYYY strings, matching the
// portal's own format.
type Period struct {
	Kind      PeriodKind
	StartDate string
	EndDate   string
	Month     int
	Year      int
}

func NewDateRange(start, end string) Period {
	return Period{Kind: PeriodDateRange, StartDate: start, EndDate: end}
}

func NewMonthPeriod(month, year int) Period {
	return Period{Kind: PeriodMonth, Month: month, Year: year}
}

func NewYearPeriod(year int) Period {
	return Period{Kind: PeriodYear, Year: year}
}

// Describe renders a human-readable period label for logs and report headers.
func (p Period) Describe() string {
	switch p.Kind {
	case PeriodDateRange:
		return fmt.Sprintf("%s - %s", p.StartDate, p.EndDate)
	case PeriodMonth:
		return fmt.Sprintf("%d/%d", p.Month, p.Year)
	default:
		return fmt.Sprintf("Year %d", p.Year)
	}
}

// Slug renders the filename fragment used when naming output files.
func (p Period) Slug() string {
	switch p.Kind {
	case PeriodDateRange:
		return "range"
	case PeriodMonth:
		return fmt.Sprintf("%d_%02d", p.Year, p.Month)
	default:
		return fmt.Sprintf("%d", p.Year)
	}
}
