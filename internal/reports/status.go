package reports

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status is the triage state of a report. Transitions are unordered: an
// operator may move a report from any status to any other, there is no
// terminal state.
type Status string

const (
	StatusPending       Status = "pending"
	StatusInvestigating Status = "investigating"
	StatusClosed        Status = "closed"
)

// AllStatuses enumerates every Status. Display tables below are checked
// against it at init so a new status cannot ship without labels.
var AllStatuses = []Status{StatusPending, StatusInvestigating, StatusClosed}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInvestigating, StatusClosed:
		return true
	}
	return false
}

// statusLabels and statusStyles are exhaustive over AllStatuses; there is no
// fallback entry.
var statusLabels = map[Status]string{
	StatusPending:       "Pending Review",
	StatusInvestigating: "Under Investigation",
	StatusClosed:        "Case Closed",
}

var statusStyles = map[Status]string{
	StatusPending:       "yellow",
	StatusInvestigating: "blue",
	StatusClosed:        "green",
}

func init() {
	for _, s := range AllStatuses {
		if _, ok := statusLabels[s]; !ok {
			panic(fmt.Sprintf("reports: missing label for status %q", s))
		}
		if _, ok := statusStyles[s]; !ok {
			panic(fmt.Sprintf("reports: missing style for status %q", s))
		}
	}
}

// Label returns the operator-facing display text for a status.
func (s Status) Label() string { return statusLabels[s] }

// Style returns the badge color token for a status.
func (s Status) Style() string { return statusStyles[s] }

var titleCaser = cases.Title(language.English)

// DisplayLabel title-cases a stored type or category value for rendering,
// e.g. "drugs" -> "Drugs".
func DisplayLabel(v string) string {
	return titleCaser.String(v)
}
