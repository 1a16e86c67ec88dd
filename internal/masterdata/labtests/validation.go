package labtests

import (
	"fmt"
	"strings"

	"github.com/nidaan-his/nidaan-his/internal/masterdata/shared"
)

func validate(t LabTest) error {
	if strings.TrimSpace(t.Code) == "" {
		return fmt.Errorf("%w: code", shared.ErrRequiredField)
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name", shared.ErrRequiredField)
	}
	if t.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if t.CommissionRate > t.Price {
		return fmt.Errorf("commission rate cannot exceed the test price")
	}
	return nil
}
