package dig_container

import (
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/httpspriya/GVP-AI-Hackathon-2026/apps/api/echo"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/attendance"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/student"
	logsvc "github.com/httpspriya/GVP-AI-Hackathon-2026/services/logger"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/storage/database"
	sqlxrepos "github.com/httpspriya/GVP-AI-Hackathon-2026/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

type DBResult struct {
	dig.Out
	DB       *sqlx.DB
	CoreDB   core.DB
	Executor core.DBExecutor
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) DBResult {
	db, err := database.Setup(conf)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return DBResult{DB: db, CoreDB: db, Executor: db}
}

func newValidate() *validator.Validate {
	return validator.New()
}

func newTranslator() ut.Translator {
	return core.NewTranslator()
}

func newServer(
	conf *core.Config,
	logger core.Logger,
	studentSvc student.ServiceInterface,
	attendanceSvc attendance.ServiceInterface,
	validate *validator.Validate,
	translator ut.Translator,
) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:          conf,
		Logger:        logger,
		StudentSvc:    studentSvc,
		AttendanceSvc: attendanceSvc,
		Validate:      validate,
		Translator:    translator,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(sqlxrepos.NewStudentRepository, dig.As(new(student.Repository))))
	must(c.Provide(sqlxrepos.NewAttendanceRepository, dig.As(new(attendance.Repository))))
	must(c.Provide(newValidate))
	must(c.Provide(newTranslator))
	must(c.Provide(student.NewService, dig.As(new(student.ServiceInterface))))
	must(c.Provide(attendance.NewService, dig.As(new(attendance.ServiceInterface))))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
