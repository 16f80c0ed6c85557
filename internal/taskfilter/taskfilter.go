// Package taskfilter resolves the closed date-range keyword vocabulary into
// concrete due-date constraints. Keywords are computed from the current
// instant; weeks start on Monday.
package taskfilter

import "time"

const (
	KeywordToday     = "today"
	KeywordTomorrow  = "tomorrow"
	KeywordThisWeek  = "this_week"
	KeywordNextWeek  = "next_week"
	KeywordThisMonth = "this_month"
	KeywordOverdue   = "overdue"
	KeywordNoDueDate = "no_due_date"
)

type Kind int

const (
	// KindRange matches From <= due < To.
	KindRange Kind = iota
	// KindBefore matches due < To.
	KindBefore
	// KindNull matches tasks without a due date.
	KindNull
)

// Constraint is a resolved due-date predicate.
type Constraint struct {
	Kind Kind
	From time.Time
	To   time.Time
}

// Resolve maps a keyword to its constraint relative to now. Unknown keywords
// report ok=false and impose no constraint, matching the lenient behavior of
// the original query path.
//
// Note: KeywordOverdue deliberately matches tasks of any status, including
// completed ones. The dashboard overdue count excludes completed tasks; the
// two call sites disagree in the source system and both behaviors are kept.
func Resolve(keyword string, now time.Time) (Constraint, bool) {
	day := startOfDay(now)

	switch keyword {
	case KeywordToday:
		return Constraint{Kind: KindRange, From: day, To: day.AddDate(0, 0, 1)}, true
	case KeywordTomorrow:
		from := day.AddDate(0, 0, 1)
		return Constraint{Kind: KindRange, From: from, To: from.AddDate(0, 0, 1)}, true
	case KeywordThisWeek:
		from := startOfWeek(now)
		return Constraint{Kind: KindRange, From: from, To: from.AddDate(0, 0, 7)}, true
	case KeywordNextWeek:
		from := startOfWeek(now).AddDate(0, 0, 7)
		return Constraint{Kind: KindRange, From: from, To: from.AddDate(0, 0, 7)}, true
	case KeywordThisMonth:
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Constraint{Kind: KindRange, From: from, To: from.AddDate(0, 1, 0)}, true
	case KeywordOverdue:
		return Constraint{Kind: KindBefore, To: now}, true
	case KeywordNoDueDate:
		return Constraint{Kind: KindNull}, true
	}
	return Constraint{}, false
}

// Matches reports whether a due date (nil when absent) satisfies the
// constraint. Used by the in-memory evaluation paths and tests; the repo
// translates the same constraint into SQL.
func (c Constraint) Matches(due *time.Time) bool {
	switch c.Kind {
	case KindNull:
		return due == nil
	case KindBefore:
		return due != nil && due.Before(c.To)
	default:
		return due != nil && !due.Before(c.From) && due.Before(c.To)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // Sunday belongs to the week that started the previous Monday
	}
	return startOfDay(t).AddDate(0, 0, -(wd - 1))
}
