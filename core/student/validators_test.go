package student

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRollNumber(t *testing.T) {
	tests := []struct {
		in       string
		wantOk   bool
		wantText string
	}{
		{in: "", wantText: rollNoEmptyText},
		{in: "   ", wantText: rollNoEmptyText},
		{in: "CS", wantText: rollNoInvalidText},
		{in: "CS_101", wantText: rollNoInvalidText},
		{in: "CS 101", wantText: rollNoInvalidText},
		{in: "ABCDEFGHIJKLMNOP", wantText: rollNoInvalidText},
		{in: "cs1", wantOk: true, wantText: rollNoValidText},
		{in: " 2024-CS-001 ", wantOk: true, wantText: rollNoValidText},
		{in: "ABCDEFGHIJKLMNO", wantOk: true, wantText: rollNoValidText},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ok, text := ValidateRollNumber(tt.in)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestNormalizeRollNumber(t *testing.T) {
	assert.Equal(t, "CS-101", NormalizeRollNumber("  cs-101 "))
}

func TestParseSemester(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr error
	}{
		{in: "1", want: 1},
		{in: " 8 ", want: 8},
		{in: "0", wantErr: errSemesterRange},
		{in: "9", wantErr: errSemesterRange},
		{in: "-3", wantErr: errSemesterRange},
		{in: "", wantErr: errSemesterInvalid},
		{in: "two", wantErr: errSemesterInvalid},
		{in: "2.5", wantErr: errSemesterInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSemester(tt.in)
			if err != tt.wantErr {
				t.Fatalf("ParseSemester() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.Equal(t, errNameEmpty, ValidateName(" \t"))
	assert.NoError(t, ValidateName("Ada"))
}

func TestParseMarks(t *testing.T) {
	tests := []struct {
		in         string
		want       float64
		wantStrict error
	}{
		{in: "87.5", want: 87.5},
		{in: " 40 ", want: 40},
		{in: "150", want: 100},
		{in: "-5", want: 0},
		{in: "0", want: 0},
		{in: "", want: 0, wantStrict: errMarksInvalid},
		{in: "abc", want: 0, wantStrict: errMarksInvalid},
		{in: "NaN", want: 0, wantStrict: errMarksInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMarks(tt.in))

			got, err := ParseMarksStrict(tt.in)
			assert.Equal(t, tt.wantStrict, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
