package attendance

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/student"
)

type (
	// Repository persists the Attendance Day Ledger.
	// ApplyCounterDeltas is the only way to change the students' attendance counters
	// and must only be called by Service.ApplyDay.
	Repository interface {
		QueryRecordsByDate(ctx context.Context, date core.Date, exec ...core.DBExecutor) ([]Record, error)
		QueryRecordsBetween(ctx context.Context, from, to core.Date, exec ...core.DBExecutor) ([]Record, error)
		DeleteRecordsByDate(ctx context.Context, date core.Date, exec ...core.DBExecutor) error
		InsertRecords(ctx context.Context, records []Record, exec ...core.DBExecutor) error
		ApplyCounterDeltas(ctx context.Context, deltas map[int]Tally, exec ...core.DBExecutor) error
	}

	ServiceInterface interface {
		Today() core.Date
		ClosedWeekday() time.Weekday
		ApplyDay(ctx context.Context, date core.Date, statuses map[int]Status) (Result, error)
		GetDay(ctx context.Context, date core.Date) (DaySheet, error)
		RecordsForMonth(ctx context.Context, year int, month time.Month) ([]Record, error)
	}

	Options struct {
		Location      *time.Location
		ClosedWeekday time.Weekday
		Now           func() time.Time
	}

	Service struct {
		db       core.DB
		repo     Repository
		students student.Repository
		logger   core.Logger
		opts     Options
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(db core.DB, repo Repository, students student.Repository, logger core.Logger, conf *core.Config) *Service {
	return NewServiceWithOptions(db, repo, students, logger, Options{
		Location:      conf.Attendance.Location,
		ClosedWeekday: conf.Attendance.ClosedWeekday,
	})
}

func NewServiceWithOptions(db core.DB, repo Repository, students student.Repository, logger core.Logger, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		db:       db,
		repo:     repo,
		students: students,
		logger:   logger,
		opts:     opts,
	}
}

// Today is the current calendar day in the configured location.
func (svc *Service) Today() core.Date {
	return core.DateOf(svc.opts.Now().In(svc.opts.Location))
}

func (svc *Service) ClosedWeekday() time.Weekday {
	return svc.opts.ClosedWeekday
}

// check returns why date cannot be applied, if so.
func (svc *Service) check(date core.Date) RejectReason {
	if date.After(svc.Today()) {
		return ReasonFutureDate
	}
	if date.Weekday() == svc.opts.ClosedWeekday {
		return ReasonNonAttendanceDay
	}
	return ""
}

// ApplyDay records the full roll-call of date: the day's previous records (if any) are reverted
// from the students' counters and replaced by the new statuses, all in one transaction.
// Roster students missing from statuses are marked absent.
// A rejected day is not an error: Result.Applied is false and Result.Reason tells why.
func (svc *Service) ApplyDay(ctx context.Context, date core.Date, statuses map[int]Status) (Result, error) {
	res := Result{Date: date}
	if reason := svc.check(date); reason != "" {
		res.Reason = reason
		return res, nil
	}

	err := core.WithTx(ctx, svc.db, func(tx core.DBExecutor) error {
		existing, err := svc.repo.QueryRecordsByDate(ctx, date, tx)
		if err != nil {
			return errors.Wrap(err, "querying existing records")
		}

		roster, err := svc.students.QueryStudents(ctx, nil, tx)
		if err != nil {
			return errors.Wrap(err, "querying roster")
		}
		sortByRollNo(roster)

		records, err := buildRecords(date, roster, statuses)
		if err != nil {
			return err
		}

		if len(existing) > 0 {
			if err = svc.repo.DeleteRecordsByDate(ctx, date, tx); err != nil {
				return errors.Wrap(err, "deleting existing records")
			}
		}
		if err = svc.repo.InsertRecords(ctx, records, tx); err != nil {
			return errors.Wrap(err, "inserting records")
		}
		if err = svc.repo.ApplyCounterDeltas(ctx, reconcile(existing, records), tx); err != nil {
			return errors.Wrap(err, "applying counter deltas")
		}

		res.Edited = len(existing) > 0
		res.Marked = len(records)
		for _, rec := range records {
			if rec.Status == StatusPresent {
				res.Present++
			}
		}
		return nil
	})
	if err != nil {
		if _, ok := errors.Cause(err).(*core.ValidationError); ok {
			return Result{Date: date}, err
		}
		return Result{Date: date}, errors.Wrapf(err, "applying attendance of %s", date)
	}

	res.Applied = true
	if res.Edited && svc.logger != nil {
		svc.logger.Info("attendance edited", map[string]interface{}{
			"date":    date.String(),
			"marked":  res.Marked,
			"present": res.Present,
		})
	}
	return res, nil
}

// GetDay returns the records of date, keyed by student ID.
func (svc *Service) GetDay(ctx context.Context, date core.Date) (DaySheet, error) {
	records, err := svc.repo.QueryRecordsByDate(ctx, date)
	if err != nil {
		return DaySheet{}, errors.Wrap(err, "querying records")
	}
	sheet := DaySheet{
		Date:     date,
		Taken:    len(records) > 0,
		Closed:   date.Weekday() == svc.opts.ClosedWeekday,
		Statuses: make(map[int]Status, len(records)),
	}
	for _, rec := range records {
		sheet.Statuses[rec.StudentID] = rec.Status
	}
	return sheet, nil
}

// RecordsForMonth returns all records from the first to the last day of the month.
func (svc *Service) RecordsForMonth(ctx context.Context, year int, month time.Month) ([]Record, error) {
	days := core.DaysIn(year, month)
	records, err := svc.repo.QueryRecordsBetween(ctx, days[0], days[len(days)-1])
	if err != nil {
		return nil, errors.Wrap(err, "querying records")
	}
	return records, nil
}
