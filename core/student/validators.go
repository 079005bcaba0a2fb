package student

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core"
)

var (
	rollNoEmptyText   = "Roll number cannot be empty."
	rollNoInvalidText = "Roll number must be 3-15 alphanumeric characters (hyphens allowed)."
	rollNoValidText   = "Valid roll number."

	errSemesterRange   = errors.New("Semester must be between 1 and 8.")
	errSemesterInvalid = errors.New("Invalid semester.")
	errNameEmpty       = errors.New("Name cannot be empty.")
	errMarksInvalid    = errors.New("Marks must be a number.")
)

// ValidateRollNumber reports whether rollNo is valid along with a human-readable reason.
func ValidateRollNumber(rollNo string) (bool, string) {
	rollNo = core.CleanString(rollNo)
	if rollNo == "" {
		return false, rollNoEmptyText
	}
	if !core.RollNoRegex.MatchString(rollNo) {
		return false, rollNoInvalidText
	}
	return true, rollNoValidText
}

// NormalizeRollNumber returns the stored form of rollNo.
func NormalizeRollNumber(rollNo string) string {
	return strings.ToUpper(core.CleanString(rollNo))
}

// ParseSemester parses a semester, which must be an integer in [1,8].
func ParseSemester(s string) (int, error) {
	sem, err := strconv.Atoi(core.CleanString(s))
	if err != nil {
		return 0, errSemesterInvalid
	}
	if sem < MinSemester || sem > MaxSemester {
		return 0, errSemesterRange
	}
	return sem, nil
}

// ValidateName checks that name is not blank.
func ValidateName(name string) error {
	if core.CleanString(name) == "" {
		return errNameEmpty
	}
	return nil
}

// ParseMarks parses marks input and clamps it into [0,100].
// Unparsable input silently becomes 0, see ParseMarksStrict.
func ParseMarks(s string) float64 {
	marks, err := ParseMarksStrict(s)
	if err != nil {
		return 0
	}
	return marks
}

// ParseMarksStrict is like ParseMarks but rejects unparsable input.
func ParseMarksStrict(s string) (float64, error) {
	marks, err := strconv.ParseFloat(core.CleanString(s), 64)
	if err != nil || math.IsNaN(marks) {
		return 0, errMarksInvalid
	}
	return math.Max(0, math.Min(100, marks)), nil
}
