package attendance

import (
	"sort"
	"strconv"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/student"
)

// contribution is what a single record adds to its student's counters.
func contribution(status Status) Tally {
	t := Tally{Classes: 1}
	if status == StatusPresent {
		t.Attended = 1
	}
	return t
}

// reconcile returns the net counter deltas of replacing `existing` with `replacement`:
// every existing record is reverted, every replacement record is applied.
// Students whose delta nets to zero are left out.
func reconcile(existing, replacement []Record) map[int]Tally {
	deltas := make(map[int]Tally, len(replacement))
	for _, rec := range existing {
		c := contribution(rec.Status)
		d := deltas[rec.StudentID]
		d.Attended -= c.Attended
		d.Classes -= c.Classes
		deltas[rec.StudentID] = d
	}
	for _, rec := range replacement {
		c := contribution(rec.Status)
		d := deltas[rec.StudentID]
		d.Attended += c.Attended
		d.Classes += c.Classes
		deltas[rec.StudentID] = d
	}
	for id, d := range deltas {
		if d.IsZero() {
			delete(deltas, id)
		}
	}
	return deltas
}

// buildRecords returns one record per roster student, in roster order (by roll number).
// Students missing from statuses are absent; statuses of students outside the roster are an error.
func buildRecords(date core.Date, roster []student.Student, statuses map[int]Status) ([]Record, error) {
	known := make(map[int]struct{}, len(roster))
	records := make([]Record, 0, len(roster))
	for _, stu := range roster {
		known[stu.ID] = struct{}{}
		status, ok := statuses[stu.ID]
		if !ok {
			status = StatusAbsent
		}
		records = append(records, Record{Date: date, StudentID: stu.ID, Status: status})
	}

	var unknown []int
	for id := range statuses {
		if _, ok := known[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Ints(unknown)
		flds := make([]core.FieldError, 0, len(unknown))
		for _, id := range unknown {
			flds = append(flds, core.FieldError{Field: "statuses." + strconv.Itoa(id), Error: student.ErrNotFound.Error()})
		}
		return nil, core.NewValidationError(student.ErrNotFound, flds...)
	}
	return records, nil
}

func sortByRollNo(roster []student.Student) {
	sort.SliceStable(roster, func(i, j int) bool { return roster[i].RollNo < roster[j].RollNo })
}
