// Package certificates stores the editable certificate templates the
// clinic prints: birth, death, fitness and discharge letters.
package certificates

import (
	"errors"
	"time"
)

type Type string

const (
	TypeBirth     Type = "birth"
	TypeDeath     Type = "death"
	TypeFitness   Type = "fitness"
	TypeDischarge Type = "discharge"
)

var (
	ErrUnknownType = errors.New("unknown certificate type")
	ErrNotFound    = errors.New("certificate template not found")
)

func (t Type) Valid() bool {
	switch t {
	case TypeBirth, TypeDeath, TypeFitness, TypeDischarge:
		return true
	}
	return false
}

// Template is one saved certificate layout. Body holds the markup with
// {{.Patient.Name}}-style placeholders filled in at print time.
type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}
