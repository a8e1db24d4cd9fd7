package model

import "time"

// Lead is a customer enquiry submitted from the public site. CarID is a weak
// reference: the car may be deleted later and the lead keeps pointing at it.
type Lead struct {
	ID        int64
	CarID     *int64
	Name      string
	Phone     string
	Message   string
	CreatedAt time.Time
}

// LeadWithCar is a lead joined with its referenced car's display fields.
// The car fields are nil when the reference dangles.
type LeadWithCar struct {
	Lead
	CarMake  *string
	CarModel *string
	CarYear  *int
}
