package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/student"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/storage/database"
)

// NewConfig returns the configuration used by tests: an in-memory SQLite database,
// UTC calendar days and Sunday as the non-attendance day.
func NewConfig() *core.Config {
	return &core.Config{
		Env:      "TEST",
		AppName:  "Roll Call",
		Build:    "test",
		TestMode: true,
		Server: core.ServerConfig{
			Host:            "localhost",
			ShutdownTimeout: time.Second,
			DisableReqLogs:  true,
		},
		Database: core.DatabaseConfig{
			Engine: core.EngineSQLite,
			Path:   ":memory:",
		},
		Attendance: core.AttendanceConfig{
			Location:      time.UTC,
			ClosedWeekday: time.Sunday,
		},
		Samples: core.SamplesConfig{
			Default: 5,
			Max:     10,
		},
	}
}

// PrepareDB returns a fresh, migrated database closed at the end of the test.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Setup(NewConfig())
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("db.Close() failed: %v", err)
		}
	})
	return db
}

func CreateStudent(t *testing.T, repo student.Repository, rollNo, name string, semester int) student.Student {
	t.Helper()

	stu, err := repo.CreateStudent(context.Background(), student.Student{
		RollNo:   rollNo,
		Name:     name,
		Semester: semester,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return stu
}

// ReloadStudent fetches the current state of stu.
func ReloadStudent(t *testing.T, repo student.Repository, stu student.Student) student.Student {
	t.Helper()

	fresh, err := repo.GetStudent(context.Background(), stu.ID)
	if err != nil {
		t.Fatalf("ReloadStudent() failed: %v", err)
	}
	return fresh
}
