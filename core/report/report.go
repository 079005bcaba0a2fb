// Package report derives read-only views from the student & attendance ledgers.
// Everything here is a pure function of its inputs.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/attendance"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/student"
)

// RequiredAttendance is the percentage under which a student's attendance is low.
const RequiredAttendance = 75

// Percentage returns attended/classes*100, or 0 when no class was recorded.
func Percentage(attended, classes int) float64 {
	if classes <= 0 {
		return 0
	}
	return float64(attended) / float64(classes) * 100
}

// Round1 rounds f to one decimal.
func Round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// Remark levels
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelDanger  = "danger"
)

type Remark struct {
	Label string `json:"label"`
	Level string `json:"level"`
}

var attendanceTiers = []struct {
	min    float64
	remark Remark
}{
	{90, Remark{"Excellent", LevelSuccess}},
	{75, Remark{"Good — meets requirement", LevelInfo}},
	{60, Remark{"Warning: below 75%", LevelWarning}},
}

// AttendanceRemark returns the remark of an attendance percentage. Tier bounds are inclusive.
func AttendanceRemark(pct float64) Remark {
	for _, tier := range attendanceTiers {
		if pct >= tier.min {
			return tier.remark
		}
	}
	return Remark{"Critical: below 60%", LevelDanger}
}

var performanceTiers = []struct {
	min   float64
	label string
}{
	{90, "Excellent"},
	{80, "Very Good"},
	{70, "Good"},
	{60, "Average"},
	{40, "Needs Improvement"},
}

// PerformanceRemark returns the remark of a student's marks. Tier bounds are inclusive.
func PerformanceRemark(marks float64) string {
	for _, tier := range performanceTiers {
		if marks >= tier.min {
			return tier.label
		}
	}
	return "Poor"
}

// IsLowAttendance reports whether stu has recorded classes and is below RequiredAttendance.
func IsLowAttendance(stu student.Student) bool {
	return stu.TotalClasses > 0 && Percentage(stu.TotalAttendance, stu.TotalClasses) < RequiredAttendance
}

// Summary is the dashboard overview.
type Summary struct {
	TotalStudents int               `json:"total_students"`
	LowAttendance int               `json:"low_attendance"`
	Students      []student.Student `json:"students"`
}

func Dashboard(students []student.Student) Summary {
	sum := Summary{TotalStudents: len(students), Students: students}
	for _, stu := range students {
		if IsLowAttendance(stu) {
			sum.LowAttendance++
		}
	}
	return sum
}

// AttendanceRow is a student with their attendance percentage & remark.
type AttendanceRow struct {
	student.Student
	AttendancePct    float64 `json:"attendance_pct"`
	AttendanceRemark Remark  `json:"attendance_remark"`
}

func Roster(students []student.Student) []AttendanceRow {
	rows := make([]AttendanceRow, 0, len(students))
	for _, stu := range students {
		pct := Percentage(stu.TotalAttendance, stu.TotalClasses)
		rows = append(rows, AttendanceRow{
			Student:          stu,
			AttendancePct:    Round1(pct),
			AttendanceRemark: AttendanceRemark(pct),
		})
	}
	return rows
}

type OverallRow struct {
	AttendanceRow
	PerformanceRemark string `json:"performance_remark"`
}

// Overall is the student-wise summary of attendance & marks.
func Overall(students []student.Student) []OverallRow {
	rows := make([]OverallRow, 0, len(students))
	for _, row := range Roster(students) {
		rows = append(rows, OverallRow{
			AttendanceRow:     row,
			PerformanceRemark: PerformanceRemark(row.Marks),
		})
	}
	return rows
}

type (
	MarksRow struct {
		student.Student
		Remark string `json:"remark"`
	}

	MarksSheet struct {
		Students []MarksRow `json:"students"`
		Average  float64    `json:"avg_marks"`
	}
)

// Marks lists students with their performance remark and the class average.
func Marks(students []student.Student) MarksSheet {
	sheet := MarksSheet{Students: make([]MarksRow, 0, len(students))}
	var total float64
	for _, stu := range students {
		total += stu.Marks
		sheet.Students = append(sheet.Students, MarksRow{Student: stu, Remark: PerformanceRemark(stu.Marks)})
	}
	if len(students) > 0 {
		sheet.Average = Round1(total / float64(len(students)))
	}
	return sheet
}

type (
	// MonthlyRow holds a student's statuses for each day of the month.
	// Days without a record are "" and count neither as present nor as recorded.
	MonthlyRow struct {
		Student       student.Student     `json:"student"`
		Statuses      []attendance.Status `json:"statuses"`
		Present       int                 `json:"present"`
		Recorded      int                 `json:"recorded"`
		AttendancePct float64             `json:"attendance_pct"`
	}

	MonthlyReport struct {
		Year  int          `json:"year"`
		Month time.Month   `json:"month"`
		Title string       `json:"title"`
		Dates []core.Date  `json:"dates"`
		Rows  []MonthlyRow `json:"rows"`
	}
)

// Monthly builds the date-wise attendance matrix of a month.
// Records outside the month are ignored.
func Monthly(year int, month time.Month, students []student.Student, records []attendance.Record) MonthlyReport {
	dates := core.DaysIn(year, month)
	dayIndex := make(map[core.Date]int, len(dates))
	for i, d := range dates {
		dayIndex[d] = i
	}

	byStudent := make(map[int][]attendance.Status, len(students))
	for _, stu := range students {
		byStudent[stu.ID] = make([]attendance.Status, len(dates))
	}
	for _, rec := range records {
		i, inMonth := dayIndex[rec.Date]
		statuses, known := byStudent[rec.StudentID]
		if !inMonth || !known {
			continue
		}
		statuses[i] = rec.Status
	}

	rep := MonthlyReport{
		Year:  year,
		Month: month,
		Title: fmt.Sprintf("%s %d", month, year),
		Dates: dates,
		Rows:  make([]MonthlyRow, 0, len(students)),
	}
	for _, stu := range students {
		row := MonthlyRow{Student: stu, Statuses: byStudent[stu.ID]}
		for _, status := range row.Statuses {
			switch status {
			case attendance.StatusPresent:
				row.Present++
				row.Recorded++
			case attendance.StatusAbsent:
				row.Recorded++
			}
		}
		row.AttendancePct = Round1(Percentage(row.Present, row.Recorded))
		rep.Rows = append(rep.Rows, row)
	}
	return rep
}

// ParseMonth parses a "YYYY-MM" month, falling back to the month of today on invalid input.
func ParseMonth(param string, today core.Date) (int, time.Month) {
	parts := strings.Split(core.CleanString(param), "-")
	if len(parts) != 2 {
		return today.Year(), today.Month()
	}
	year, yErr := strconv.Atoi(parts[0])
	month, mErr := strconv.Atoi(parts[1])
	if yErr != nil || mErr != nil || year < 1 || month < 1 || month > 12 {
		return today.Year(), today.Month()
	}
	return year, time.Month(month)
}
