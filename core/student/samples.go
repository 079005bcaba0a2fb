package student

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/pkg/errors"
)

type sampleFaker interface {
	Name() string
	Number(min, max int) int
}

// newFaker returns a seeded faker; seed 0 picks a random seed.
func newFaker(seed int64) sampleFaker {
	return gofakeit.New(seed)
}

func sampleRollNo(faker sampleFaker) string {
	return fmt.Sprintf("CS%d", faker.Number(1000, 9999))
}

// generateSamples builds `count` students with roll numbers unique within the batch.
func generateSamples(faker sampleFaker, count int) []Student {
	students := make([]Student, 0, count)
	usedRolls := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		rollNo := sampleRollNo(faker)
		for {
			if _, used := usedRolls[rollNo]; !used {
				break
			}
			rollNo = sampleRollNo(faker)
		}
		usedRolls[rollNo] = struct{}{}
		students = append(students, Student{
			RollNo:   rollNo,
			Name:     faker.Name(),
			Semester: faker.Number(MinSemester, MaxSemester),
		})
	}
	return students
}

// GenerateSamples adds up to `count` fake students and returns how many were added.
// count is clamped into [1, MaxSamples]; 0 means DefaultSamples.
// Samples clashing with an existing roll number are skipped.
func (svc *Service) GenerateSamples(ctx context.Context, count int) (int, error) {
	if count == 0 {
		count = svc.opts.DefaultSamples
	}
	if count < 1 {
		count = 1
	}
	if count > svc.opts.MaxSamples {
		count = svc.opts.MaxSamples
	}

	var added int
	for _, stu := range generateSamples(svc.faker, count) {
		if _, err := svc.repo.CreateStudent(ctx, stu); err != nil {
			if errors.Cause(err) == ErrRollNoExists {
				continue
			}
			return added, errors.Wrap(err, "creating sample student")
		}
		added++
	}
	return added, nil
}
