package student

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core"
)

// Semester bounds
const (
	MinSemester = 1
	MaxSemester = 8
)

// Student is a ledger entry: identity, marks and cumulative attendance counters.
// TotalAttendance & TotalClasses are only ever changed by the attendance reconciliation.
type Student struct {
	ID              int     `json:"id" db:"id"`
	RollNo          string  `json:"roll_no" db:"roll_no"`
	Name            string  `json:"name" db:"name"`
	Semester        int     `json:"semester" db:"semester"`
	Marks           float64 `json:"marks" db:"marks"`
	TotalAttendance int     `json:"total_attendance" db:"total_attendance"`
	TotalClasses    int     `json:"total_classes" db:"total_classes"`
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	RollNo   string `json:"roll_no" validate:"required,rollno"`
	Name     string `json:"name" validate:"required,notblank"`
	Semester int    `json:"semester" validate:"required,min=1,max=8"`
}

// Validate cleans the input then checks it, including roll number uniqueness.
func (ns *NewStudent) Validate(validate *validator.Validate, svc ServiceInterface) error {
	ns.RollNo = strings.ToUpper(core.CleanString(ns.RollNo))
	ns.Name = core.CleanString(ns.Name)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckUniqueness(ns.RollNo)
}

// MarksUpdate maps student IDs to raw marks input, as typed by the operator.
type MarksUpdate struct {
	Marks map[int]string `json:"marks"`
}

// SamplesRequest asks for `Count` generated students.
type SamplesRequest struct {
	Count int `json:"count"`
}
