package forms

import (
	"errors"
	"fmt"
)

type DialogState int

const (
	Closed DialogState = iota
	Open
	Submitting
	OpenWithErrors
)

func (s DialogState) String() string {
	switch s {
	case Open:
		return "open"
	case Submitting:
		return "submitting"
	case OpenWithErrors:
		return "open-with-errors"
	default:
		return "closed"
	}
}

var ErrBadTransition = errors.New("invalid dialog transition")

// Dialog tracks one create dialog. Errors holds field messages and Message
// a form-level failure, such as the server's detail.
type Dialog struct {
	State   DialogState
	Errors  Errors
	Message string
}

func (d *Dialog) IsOpen() bool {
	return d.State != Closed
}

func (d *Dialog) Open() {
	*d = Dialog{State: Open}
}

// Cancel discards whatever was entered.
func (d *Dialog) Cancel() {
	*d = Dialog{}
}

// Submit runs check. A failed check keeps the dialog open with the field
// errors and nothing is sent.
func (d *Dialog) Submit(check func() Errors) error {
	if d.State != Open && d.State != OpenWithErrors {
		return fmt.Errorf("%w: submit from %s", ErrBadTransition, d.State)
	}
	if errs := check(); len(errs) > 0 {
		d.State = OpenWithErrors
		d.Errors = errs
		d.Message = ""
		return nil
	}
	d.State = Submitting
	d.Errors = nil
	d.Message = ""
	return nil
}

// Ready reports whether the last Submit passed validation.
func (d *Dialog) Ready() bool {
	return d.State == Submitting
}

func (d *Dialog) Succeed() error {
	if d.State != Submitting {
		return fmt.Errorf("%w: succeed from %s", ErrBadTransition, d.State)
	}
	*d = Dialog{}
	return nil
}

// Fail reopens the dialog after the remote call failed.
func (d *Dialog) Fail(msg string, errs Errors) error {
	if d.State != Submitting {
		return fmt.Errorf("%w: fail from %s", ErrBadTransition, d.State)
	}
	d.State = OpenWithErrors
	d.Message = msg
	d.Errors = errs
	return nil
}
