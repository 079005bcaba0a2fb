package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/student"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db         *sqlx.DB
	engine     string
	validate   *validator.Validate
	studentSvc student.ServiceInterface
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS]                          - run a goose command (up, down, status, version...)")
	fmt.Println("  addstudent -roll ROLL -name NAME -semester SEM  - add a student")
	fmt.Println("  seed -count N                                   - add N (1-10) sample students")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ContinueOnError)
	addStudentRoll := addStudentCmd.String("roll", "", "The student's roll number (3-15 alphanumeric characters or hyphens).")
	addStudentName := addStudentCmd.String("name", "", "The student's full name.")
	addStudentSem := addStudentCmd.String("semester", "", "The student's semester (1-8).")

	seedCmd := flag.NewFlagSet("seed", flag.ContinueOnError)
	seedCount := seedCmd.Int("count", 0, "How many sample students to add (default from config).")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addStudentRoll == "" || *addStudentName == "" || *addStudentSem == "" {
			addStudentCmd.Usage()
			return errHelp
		}
		return cli.addStudent(*addStudentRoll, *addStudentName, *addStudentSem)
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.seed(*seedCount)
	default:
		cli.printUsage()
		return errHelp
	}
}
