package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/student"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/storage/database"
	sqlxrepos "github.com/httpspriya/GVP-AI-Hackathon-2026/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(err)

	// set up DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)

	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())

	// start CLI
	cli := commandLine{
		db:         db,
		engine:     conf.Database.Engine,
		validate:   validate,
		studentSvc: student.NewService(db, sqlxrepos.NewStudentRepository(db), conf),
	}
	err = cli.run(os.Args)
	if cErr := db.Close(); cErr != nil {
		logger.Printf("closing database: %v", cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
