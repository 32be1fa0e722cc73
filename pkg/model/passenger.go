package model

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// PassengerDraft is the unvalidated, in-progress detail record for one
// selected seat. Age and mobile stay strings until the booking assembler
// validates them, matching what the form collects.
type PassengerDraft struct {
	SeatID   string `json:"seat_id"`
	FullName string `json:"full_name"`
	Gender   string `json:"gender"`
	Age      string `json:"age"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
}
