package student

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// sequenceFaker replays rolls then falls back to a fixed number.
type sequenceFaker struct {
	rolls []int
}

func (f *sequenceFaker) Name() string { return "Sample Student" }

func (f *sequenceFaker) Number(min, max int) int {
	if min == MinSemester {
		return max
	}
	if len(f.rolls) == 0 {
		return min
	}
	n := f.rolls[0]
	f.rolls = f.rolls[1:]
	return n
}

func Test_generateSamples(t *testing.T) {
	rollRe := regexp.MustCompile(`^CS\d{4}$`)

	students := generateSamples(newFaker(42), 10)
	if assert.Len(t, students, 10) {
		seen := make(map[string]bool)
		for _, stu := range students {
			assert.Regexp(t, rollRe, stu.RollNo)
			assert.False(t, seen[stu.RollNo], "duplicate roll number %s", stu.RollNo)
			seen[stu.RollNo] = true
			assert.NotEmpty(t, stu.Name)
			assert.GreaterOrEqual(t, stu.Semester, MinSemester)
			assert.LessOrEqual(t, stu.Semester, MaxSemester)
		}
	}

	// same seed, same batch
	assert.Equal(t, students, generateSamples(newFaker(42), 10))
}

func Test_generateSamples_uniqueInBatch(t *testing.T) {
	faker := &sequenceFaker{rolls: []int{1234, 1234, 1234, 5678}}

	students := generateSamples(faker, 2)
	if assert.Len(t, students, 2) {
		assert.Equal(t, "CS1234", students[0].RollNo)
		assert.Equal(t, "CS5678", students[1].RollNo)
		assert.Equal(t, MaxSemester, students[0].Semester)
	}
}
