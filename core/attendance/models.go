package attendance

import (
	"github.com/pkg/errors"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

var errInvalidStatus = errors.New("status must be one of: present, absent")

// ParseStatus parses a roll-call status; blank input means absent.
func ParseStatus(s string) (Status, error) {
	switch Status(core.CleanString(s, true /* lower */)) {
	case StatusPresent:
		return StatusPresent, nil
	case StatusAbsent, "":
		return StatusAbsent, nil
	default:
		return "", errInvalidStatus
	}
}

// Record is a student's status on a given day. There is at most one per (Date, StudentID).
type Record struct {
	Date      core.Date `json:"date" db:"date"`
	StudentID int       `json:"student_id" db:"student_id"`
	Status    Status    `json:"status" db:"status"`
}

// Tally is a pair of counter values (or deltas) for a student.
type Tally struct {
	Attended int
	Classes  int
}

func (t Tally) IsZero() bool { return t.Attended == 0 && t.Classes == 0 }

// RejectReason tells why a day was not applied.
type RejectReason string

const (
	ReasonFutureDate       RejectReason = "future-date"
	ReasonNonAttendanceDay RejectReason = "non-attendance-day"
)

func (r RejectReason) Message() string {
	switch r {
	case ReasonFutureDate:
		return "Cannot mark attendance for future dates."
	case ReasonNonAttendanceDay:
		return "Attendance cannot be marked on the non-attendance day."
	default:
		return ""
	}
}

// Result is the outcome of ApplyDay: either applied, or rejected with a Reason.
type Result struct {
	Date    core.Date    `json:"date"`
	Applied bool         `json:"applied"`
	Reason  RejectReason `json:"reason,omitempty"`
	Edited  bool         `json:"edited"`  // the day had records before
	Marked  int          `json:"marked"`  // records written
	Present int          `json:"present"` // records written as present
}

// DaySheet is the attendance state of one day.
type DaySheet struct {
	Date     core.Date      `json:"date"`
	Taken    bool           `json:"taken"`
	Closed   bool           `json:"closed"` // non-attendance weekday
	Statuses map[int]Status `json:"statuses"`
}

// MarkDay is the payload of a roll-call: statuses keyed by student ID.
type MarkDay struct {
	Date     string         `json:"date"`
	Statuses map[int]string `json:"statuses"`
}

// Parse validates the payload. A blank date means today.
func (md MarkDay) Parse(today core.Date) (core.Date, map[int]Status, error) {
	date := today
	if core.CleanString(md.Date) != "" {
		var err error
		if date, err = core.ParseDate(md.Date); err != nil {
			return core.Date{}, nil, core.NewValidationError(err, core.FieldError{Field: "date", Error: err.Error()})
		}
	}

	statuses := make(map[int]Status, len(md.Statuses))
	for id, raw := range md.Statuses {
		status, err := ParseStatus(raw)
		if err != nil {
			return core.Date{}, nil, core.NewValidationError(err, core.FieldError{Field: "statuses", Error: err.Error()})
		}
		statuses[id] = status
	}
	return date, statuses, nil
}
