package patients

import (
	"fmt"
	"strings"

	"github.com/nidaan-his/nidaan-his/internal/masterdata/shared"
)

func validate(p Patient) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name", shared.ErrRequiredField)
	}
	if p.Age < 0 || p.Age > 150 {
		return fmt.Errorf("age out of range: %d", p.Age)
	}
	switch p.Sex {
	case "M", "F", "O", "":
	default:
		return errUnknownSex
	}
	return nil
}
