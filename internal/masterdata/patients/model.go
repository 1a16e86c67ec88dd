package patients

import "time"

// Patient is one registration in the patient directory.
type Patient struct {
	ID        int64     `json:"id"`
	RegNo     string    `json:"reg_no"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Sex       string    `json:"sex"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
