package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/evcraddock/clinic-visits/internal/visit"
)

var (
	// errAbandoned means the user declined to retry a rejected entry.
	errAbandoned = errors.New("entry abandoned")
	// errWrongType means a number was expected.
	errWrongType = errors.New("Wrong type, insert numbers")
)

// prompter reads answers line by line. Every ask returns io.EOF once input ends.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) askInt(label string) (int64, error) {
	s, err := p.ask(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errWrongType
	}
	return n, nil
}

// retry reports the rejection and asks whether to enter the value again.
func (p *prompter) retry(reason error) (bool, error) {
	fmt.Fprintln(p.out, reason)
	answer, err := p.ask("Do you want try again? [y/n]: ")
	if err != nil {
		return false, err
	}
	return answer == "y", nil
}

// askValid asks for a value until check accepts it or the user gives up.
func askValid[T any](p *prompter, label string, check func(string) (T, error), beforeRetry func()) (T, error) {
	var zero T
	for {
		s, err := p.ask(label)
		if err != nil {
			return zero, err
		}
		v, err := check(s)
		if err == nil {
			return v, nil
		}
		again, err := p.retry(err)
		if err != nil {
			return zero, err
		}
		if !again {
			return zero, errAbandoned
		}
		if beforeRetry != nil {
			beforeRetry()
		}
	}
}

// askDate reads a YYMMDDHH booking date.
func (p *prompter) askDate(label string) (visit.Date, error) {
	return askValid(p, label, visit.ParseDateInput, nil)
}

// askPatientID reads an 11-digit patient id.
func (p *prompter) askPatientID(label string) (string, error) {
	return askValid(p, label, visit.ValidatePatientID, nil)
}

// askDoctor lists the roster and reads a doctor's name from it.
func (p *prompter) askDoctor(label string, roster visit.Roster) (string, error) {
	showRoster := func() {
		fmt.Fprintln(p.out, "Available doctors")
		fmt.Fprintln(p.out, strings.Join(roster.Names(), ", "))
	}
	showRoster()
	return askValid(p, label, func(s string) (string, error) {
		if err := roster.Check(s); err != nil {
			return "", err
		}
		return s, nil
	}, showRoster)
}
