package main

import (
	"context"
	"fmt"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/student"
)

// addStudent validates then stores a new student.
func (cli *commandLine) addStudent(rollNo, name, semester string) error {
	if ok, reason := student.ValidateRollNumber(rollNo); !ok {
		return fmt.Errorf("roll: %s", reason)
	}
	if err := student.ValidateName(name); err != nil {
		return fmt.Errorf("name: %s", err)
	}
	sem, err := student.ParseSemester(semester)
	if err != nil {
		return fmt.Errorf("semester: %s", err)
	}

	ns := student.NewStudent{RollNo: rollNo, Name: name, Semester: sem}
	if err = ns.Validate(cli.validate, cli.studentSvc); err != nil {
		return err
	}
	stu, err := cli.studentSvc.Create(context.Background(), ns)
	if err != nil {
		return err
	}
	fmt.Printf("Student %s (%s) added with ID %d.\n", stu.RollNo, stu.Name, stu.ID)
	return nil
}

func (cli *commandLine) seed(count int) error {
	added, err := cli.studentSvc.GenerateSamples(context.Background(), count)
	if err != nil {
		return err
	}
	fmt.Printf("Added %d sample students.\n", added)
	return nil
}
