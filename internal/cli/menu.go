package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/evcraddock/clinic-visits/internal/client"
	"github.com/evcraddock/clinic-visits/internal/visit"
)

func newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive booking menu",
		Long:  "Book, search and cancel visits through numbered menus.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient()
			m := &menu{
				ctx:    cmd.Context(),
				client: c,
				roster: serverRoster(cmd.Context(), c),
				p:      newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
				out:    cmd.OutOrStdout(),
			}
			return m.run()
		},
	}
}

type menu struct {
	ctx    context.Context
	client *client.Client
	roster visit.Roster
	p      *prompter
	out    io.Writer
}

func (m *menu) run() error {
	for {
		fmt.Fprintln(m.out, "Available actions:")
		fmt.Fprintln(m.out, "1. Make an appointment")
		fmt.Fprintln(m.out, "2. Show an appointment")
		fmt.Fprintln(m.out, "3. Delete an appointment")
		fmt.Fprintln(m.out, "4. Delete all")

		action, err := m.p.ask("Choose action: ")
		if err != nil {
			return ignoreEOF(err)
		}

		switch action {
		case "1":
			err = m.book()
		case "2":
			err = m.show()
		case "3":
			err = m.remove()
		case "4":
			err = m.clear()
		default:
			fmt.Fprintln(m.out, "No such action")
		}
		if err := m.report(err); err != nil {
			return ignoreEOF(err)
		}

		again, err := m.p.ask("Do you want to continue? [yes/no]: ")
		if err != nil || again != "yes" {
			return ignoreEOF(err)
		}
	}
}

// report prints the outcome of one action. Only input and transport
// failures are returned.
func (m *menu) report(err error) error {
	switch {
	case err == nil, errors.Is(err, errAbandoned):
		return nil
	case errors.Is(err, errWrongType):
		fmt.Fprintln(m.out, errWrongType)
		return nil
	case errors.Is(err, io.EOF):
		return err
	}
	if msg, ok := rejection(err); ok {
		fmt.Fprintln(m.out, msg)
		return nil
	}
	fmt.Fprintf(m.out, "Something went wrong: %v\n", err)
	return nil
}

func (m *menu) book() error {
	id, err := m.p.askInt("Enter visit id: ")
	if err != nil {
		return err
	}
	patientID, err := m.p.askPatientID("Enter your id: ")
	if err != nil {
		return err
	}
	name, err := m.p.ask("Enter your name and surname: ")
	if err != nil {
		return err
	}
	doctor, err := m.p.askDoctor("Enter doctor's name and surname: ", m.roster)
	if err != nil {
		return err
	}
	date, err := m.p.askDate("Enter visit date (YYMMDDHH): ")
	if err != nil {
		return err
	}

	msg, err := m.client.Create(m.ctx, visit.Visit{
		VisitID:     id,
		VisitDate:   date,
		PatientID:   patientID,
		PatientName: name,
		DoctorName:  doctor,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, msg)
	return nil
}

func (m *menu) show() error {
	fmt.Fprintln(m.out, "Available search modes:")
	fmt.Fprintln(m.out, "1. Show all")
	fmt.Fprintln(m.out, "2. Search by patient id")
	fmt.Fprintln(m.out, "3. Search by doctor's name")
	fmt.Fprintln(m.out, "4. Search by visit date")
	fmt.Fprintln(m.out, "5. Search for a specific visit")

	mode, err := m.p.askInt("Choose search mode: ")
	if err != nil {
		return err
	}

	var l visit.Lookup
	switch mode {
	case 1:
		l.Mode = visit.ModeAll
	case 2:
		l.Mode = visit.ModePatient
		if l.PatientID, err = m.p.ask("Enter your id: "); err != nil {
			return err
		}
	case 3:
		l.Mode = visit.ModeDoctor
		if l.DoctorName, err = m.p.ask("Enter doctor's name: "); err != nil {
			return err
		}
	case 4:
		l.Mode = visit.ModeDate
		if l.VisitDate, err = m.askSearchDate(); err != nil {
			return err
		}
	case 5:
		l.Mode = visit.ModeSelected
		if l.PatientID, err = m.p.ask("Enter your id: "); err != nil {
			return err
		}
		if l.PatientName, err = m.p.ask("Enter your name and surname: "); err != nil {
			return err
		}
		if l.DoctorName, err = m.p.ask("Enter doctor's name: "); err != nil {
			return err
		}
		if l.VisitDate, err = m.askSearchDate(); err != nil {
			return err
		}
	default:
		fmt.Fprintln(m.out, "Cannot be selected")
		return nil
	}

	visits, err := m.client.Find(m.ctx, l)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out)
	printVisitLines(m.out, visits)
	return nil
}

// askSearchDate reads a YYMMDDHH date without booking checks; the server
// judges its format.
func (m *menu) askSearchDate() (visit.Date, error) {
	s, err := m.p.ask("Enter date (YYMMDDHH): ")
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt("1"+s, 10, 64)
	if err != nil || s == "" {
		return 0, errWrongType
	}
	return visit.Date(n), nil
}

func (m *menu) remove() error {
	id, err := m.p.askInt("Enter the id of the visit you want to delete: ")
	if err != nil {
		return err
	}
	msg, err := m.client.Delete(m.ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, msg)
	return nil
}

func (m *menu) clear() error {
	n, err := m.client.DeleteAll(m.ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "All visits deleted (%d removed)\n", n)
	return nil
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
