package student

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core"
)

var (
	// errors
	ErrNotFound     = errors.New("student not found")
	ErrRollNoExists = errors.New("a student with this roll number already exists")

	// OrderingFields are the columns students may be ordered by.
	OrderingFields = []string{"roll_no", "name", "semester", "marks", "total_attendance", "total_classes"}

	defaultOrdering = []core.DBOrdering{{Field: "roll_no", Ascending: true}}
)

type (
	// Repository persists the Student Ledger. It has no way to change attendance counters:
	// those belong to attendance.Repository.
	Repository interface {
		CountByRollNo(ctx context.Context, rollNo string, exec ...core.DBExecutor) (int, error)
		CreateStudent(ctx context.Context, stu Student, exec ...core.DBExecutor) (Student, error)
		QueryStudents(ctx context.Context, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Student, error)
		GetStudent(ctx context.Context, id int, exec ...core.DBExecutor) (Student, error)
		UpdateMarks(ctx context.Context, id int, marks float64, exec ...core.DBExecutor) error
		// DeleteStudent removes the student along with their attendance records.
		DeleteStudent(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	ServiceInterface interface {
		CheckUniqueness(rollNo string) error
		Create(ctx context.Context, ns NewStudent) (Student, error)
		QueryAll(ctx context.Context, ordering ...core.DBOrdering) ([]Student, error)
		GetByID(ctx context.Context, id int) (Student, error)
		Delete(ctx context.Context, id int) error
		UpdateMarks(ctx context.Context, update MarksUpdate) ([]Student, error)
		GenerateSamples(ctx context.Context, count int) (int, error)
	}

	Options struct {
		StrictMarks    bool
		DefaultSamples int
		MaxSamples     int
	}

	Service struct {
		db    core.DB
		repo  Repository
		opts  Options
		faker sampleFaker
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(db core.DB, repo Repository, conf *core.Config) *Service {
	return &Service{
		db:   db,
		repo: repo,
		opts: Options{
			StrictMarks:    conf.Marks.Strict,
			DefaultSamples: conf.Samples.Default,
			MaxSamples:     conf.Samples.Max,
		},
		faker: newFaker(0),
	}
}

func (svc *Service) CheckUniqueness(rollNo string) error {
	count, err := svc.repo.CountByRollNo(context.Background(), rollNo)
	if err != nil {
		return errors.Wrap(err, "checking roll number uniqueness")
	}
	if count > 0 {
		return rollNoExistsErr()
	}
	return nil
}

func rollNoExistsErr() error {
	return core.NewValidationError(ErrRollNoExists, core.FieldError{Field: "roll_no", Error: ErrRollNoExists.Error()})
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	stu := Student{
		RollNo:   NormalizeRollNumber(ns.RollNo),
		Name:     core.CleanString(ns.Name),
		Semester: ns.Semester,
	}
	stu, err := svc.repo.CreateStudent(ctx, stu)
	if err != nil {
		if errors.Cause(err) == ErrRollNoExists {
			return Student{}, rollNoExistsErr()
		}
		return Student{}, errors.Wrap(err, "creating student")
	}
	return stu, nil
}

func (svc *Service) QueryAll(ctx context.Context, ordering ...core.DBOrdering) ([]Student, error) {
	if len(ordering) == 0 {
		ordering = defaultOrdering
	}
	for _, ord := range ordering {
		if !isOrderingField(ord.Field) {
			return nil, core.NewValidationError(nil, core.FieldError{Field: "ordering", Error: "invalid ordering field " + ord.Field})
		}
	}
	return svc.repo.QueryStudents(ctx, ordering)
}

func isOrderingField(field string) bool {
	for _, f := range OrderingFields {
		if f == field {
			return true
		}
	}
	return false
}

func (svc *Service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudent(ctx, id)
}

// Delete removes the student and their attendance records.
// Other students' counters are untouched: a record only ever counts for its own student.
func (svc *Service) Delete(ctx context.Context, id int) error {
	return core.WithTx(ctx, svc.db, func(tx core.DBExecutor) error {
		return svc.repo.DeleteStudent(ctx, id, tx)
	})
}

// UpdateMarks parses & stores each marks input in a single transaction.
func (svc *Service) UpdateMarks(ctx context.Context, update MarksUpdate) ([]Student, error) {
	ids := make([]int, 0, len(update.Marks))
	for id := range update.Marks {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	values := make(map[int]float64, len(ids))
	for _, id := range ids {
		raw := update.Marks[id]
		if !svc.opts.StrictMarks {
			values[id] = ParseMarks(raw)
			continue
		}
		marks, err := ParseMarksStrict(raw)
		if err != nil {
			return nil, core.NewValidationError(err, core.FieldError{Field: "marks", Error: err.Error()})
		}
		values[id] = marks
	}

	err := core.WithTx(ctx, svc.db, func(tx core.DBExecutor) error {
		for _, id := range ids {
			if err := svc.repo.UpdateMarks(ctx, id, values[id], tx); err != nil {
				return errors.Wrapf(err, "updating marks of student %d", id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return svc.QueryAll(ctx)
}
