package billing

import (
	"fmt"
	"strings"

	"github.com/nidaan-his/nidaan-his/internal/money"
)

// Event drives the invoice state machine.
type Event string

const (
	EventSave   Event = "SAVE"
	EventReopen Event = "REOPEN"
	EventCancel Event = "CANCEL"
	EventReturn Event = "RETURN"
)

// Transition is the pure invoice state machine. Saving a draft lands on
// POSTED; the caller then derives DUE or PAID from the balance. Cancel and
// Return are manual and only valid from a saved, non-terminal state; both
// are terminal once taken (a cancelled invoice is re-created, never
// un-cancelled). Reopen puts a saved invoice back into draft for editing.
func Transition(current InvoiceStatus, event Event) (InvoiceStatus, error) {
	switch event {
	case EventSave:
		if current == StatusDraft {
			return StatusPosted, nil
		}
	case EventReopen:
		switch current {
		case StatusPosted, StatusDue, StatusPaid:
			return StatusDraft, nil
		}
	case EventCancel:
		switch current {
		case StatusPosted, StatusDue, StatusPaid:
			return StatusCancelled, nil
		}
	case EventReturn:
		switch current {
		case StatusPosted, StatusDue, StatusPaid:
			return StatusReturned, nil
		}
	}
	return current, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, event, current)
}

// ValidateForSave checks the fields a draft must carry before it may be
// posted. Every missing field is reported in one pass so the operator fixes
// the form once, and the draft is not mutated on failure.
func ValidateForSave(inv *Invoice) error {
	var missing []string
	if strings.TrimSpace(inv.Number) == "" {
		missing = append(missing, "number")
	}
	if inv.PatientID == 0 {
		missing = append(missing, "patient")
	}
	if len(inv.Items) == 0 {
		missing = append(missing, "items")
	}
	if inv.Category == CategoryIndoor && strings.TrimSpace(inv.SubCategory) == "" {
		missing = append(missing, "sub_category")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// CheckArithmetic rejects a save whose paid amount exceeds the net payable
// by more than the rounding tolerance.
func CheckArithmetic(inv *Invoice) error {
	if inv.DueAmount < -money.Tolerance {
		return fmt.Errorf("%w: paid %s against net payable %s",
			ErrOverpaid, money.Format(inv.PaidAmount), money.Format(inv.NetPayable))
	}
	return nil
}
