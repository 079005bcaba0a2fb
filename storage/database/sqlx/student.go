package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/student"
)

const studentColumns = "id, roll_no, name, semester, marks, total_attendance, total_classes"

type studentRepository struct {
	exec core.DBExecutor
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(exec core.DBExecutor) *studentRepository {
	return &studentRepository{exec: exec}
}

func (repo studentRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

// trapNoRowsErr maps "no rows" err to student.ErrNotFound
func (repo studentRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) CountByRollNo(ctx context.Context, rollNo string, exec ...core.DBExecutor) (int, error) {
	ex := repo.getExec(exec)
	var count int
	q := ex.Rebind("SELECT COUNT(*) FROM students WHERE roll_no = ?")
	if err := sqlx.GetContext(ctx, ex, &count, q, rollNo); err != nil {
		return 0, errors.Wrap(err, "counting students")
	}
	return count, nil
}

func (repo studentRepository) CreateStudent(ctx context.Context, stu student.Student, exec ...core.DBExecutor) (student.Student, error) {
	ex := repo.getExec(exec)
	q := ex.Rebind(`
		INSERT INTO students (roll_no, name, semester, marks, total_attendance, total_classes)
		VALUES (?, ?, ?, ?, 0, 0)
		RETURNING id`)

	var id int
	if err := sqlx.GetContext(ctx, ex, &id, q, stu.RollNo, stu.Name, stu.Semester, stu.Marks); err != nil {
		if isUniqueViolation(err) {
			return student.Student{}, student.ErrRollNoExists
		}
		return student.Student{}, errors.Wrap(err, "inserting student")
	}

	stu.ID = id
	stu.TotalAttendance = 0
	stu.TotalClasses = 0
	return stu, nil
}

func (repo studentRepository) QueryStudents(ctx context.Context, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]student.Student, error) {
	orderBy := make([]string, 0, len(ordering)+1)
	for _, ord := range ordering {
		orderBy = append(orderBy, ord.String())
	}
	if len(orderBy) == 0 {
		orderBy = append(orderBy, "roll_no ASC")
	}
	orderBy = append(orderBy, "id ASC")

	stus := make([]student.Student, 0)
	q := "SELECT " + studentColumns + " FROM students ORDER BY " + strings.Join(orderBy, ", ")
	if err := sqlx.SelectContext(ctx, repo.getExec(exec), &stus, q); err != nil {
		return nil, errors.Wrap(err, "selecting students")
	}
	return stus, nil
}

func (repo studentRepository) GetStudent(ctx context.Context, id int, exec ...core.DBExecutor) (student.Student, error) {
	ex := repo.getExec(exec)
	var stu student.Student
	q := ex.Rebind("SELECT " + studentColumns + " FROM students WHERE id = ?")
	if err := sqlx.GetContext(ctx, ex, &stu, q, id); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "getting student")
	}
	return stu, nil
}

func (repo studentRepository) UpdateMarks(ctx context.Context, id int, marks float64, exec ...core.DBExecutor) error {
	ex := repo.getExec(exec)
	res, err := ex.ExecContext(ctx, ex.Rebind("UPDATE students SET marks = ? WHERE id = ?"), marks, id)
	if err != nil {
		return errors.Wrap(err, "updating marks")
	}
	return checkAffected(res, student.ErrNotFound)
}

func (repo studentRepository) DeleteStudent(ctx context.Context, id int, exec ...core.DBExecutor) error {
	ex := repo.getExec(exec)
	// explicit: sqlite only cascades when foreign keys are enabled on the connection
	if _, err := ex.ExecContext(ctx, ex.Rebind("DELETE FROM attendance_records WHERE student_id = ?"), id); err != nil {
		return errors.Wrap(err, "deleting attendance records")
	}
	res, err := ex.ExecContext(ctx, ex.Rebind("DELETE FROM students WHERE id = ?"), id)
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return checkAffected(res, student.ErrNotFound)
}

// checkAffected returns notFound when res affected no row.
func checkAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "reading affected rows")
	}
	if n == 0 {
		return notFound
	}
	return nil
}
