package model

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldName      = "name"
	FieldBookingID = "booking_id"
)

// Customer is appended once per confirmed booking. Names repeat, a customer
// with three bookings has three records.
type Customer struct {
	BookingID int64  `db:"booking_id"`
	Name      string `db:"name"`
}
