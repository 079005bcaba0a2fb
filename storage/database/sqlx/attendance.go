package sqlxrepos

import (
	"context"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/attendance"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/student"
)

type attendanceRepository struct {
	exec core.DBExecutor
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(exec core.DBExecutor) *attendanceRepository {
	return &attendanceRepository{exec: exec}
}

func (repo attendanceRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

func (repo attendanceRepository) QueryRecordsByDate(ctx context.Context, date core.Date, exec ...core.DBExecutor) ([]attendance.Record, error) {
	ex := repo.getExec(exec)
	recs := make([]attendance.Record, 0)
	q := ex.Rebind("SELECT date, student_id, status FROM attendance_records WHERE date = ? ORDER BY student_id")
	if err := sqlx.SelectContext(ctx, ex, &recs, q, date); err != nil {
		return nil, errors.Wrap(err, "selecting records")
	}
	return recs, nil
}

func (repo attendanceRepository) QueryRecordsBetween(ctx context.Context, from, to core.Date, exec ...core.DBExecutor) ([]attendance.Record, error) {
	ex := repo.getExec(exec)
	recs := make([]attendance.Record, 0)
	q := ex.Rebind(`
		SELECT date, student_id, status FROM attendance_records
		WHERE date >= ? AND date <= ?
		ORDER BY date, student_id`)
	if err := sqlx.SelectContext(ctx, ex, &recs, q, from, to); err != nil {
		return nil, errors.Wrap(err, "selecting records")
	}
	return recs, nil
}

func (repo attendanceRepository) DeleteRecordsByDate(ctx context.Context, date core.Date, exec ...core.DBExecutor) error {
	ex := repo.getExec(exec)
	if _, err := ex.ExecContext(ctx, ex.Rebind("DELETE FROM attendance_records WHERE date = ?"), date); err != nil {
		return errors.Wrap(err, "deleting records")
	}
	return nil
}

func (repo attendanceRepository) InsertRecords(ctx context.Context, records []attendance.Record, exec ...core.DBExecutor) error {
	if len(records) == 0 {
		return nil
	}
	q := "INSERT INTO attendance_records (date, student_id, status) VALUES (:date, :student_id, :status)"
	if _, err := sqlx.NamedExecContext(ctx, repo.getExec(exec), q, records); err != nil {
		return errors.Wrap(err, "inserting records")
	}
	return nil
}

func (repo attendanceRepository) ApplyCounterDeltas(ctx context.Context, deltas map[int]attendance.Tally, exec ...core.DBExecutor) error {
	ids := make([]int, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	ex := repo.getExec(exec)
	q := ex.Rebind(`
		UPDATE students
		SET total_attendance = total_attendance + ?, total_classes = total_classes + ?
		WHERE id = ?`)
	for _, id := range ids {
		d := deltas[id]
		res, err := ex.ExecContext(ctx, q, d.Attended, d.Classes, id)
		if err != nil {
			return errors.Wrapf(err, "updating counters of student %d", id)
		}
		if err = checkAffected(res, student.ErrNotFound); err != nil {
			return errors.Wrapf(err, "updating counters of student %d", id)
		}
	}
	return nil
}
