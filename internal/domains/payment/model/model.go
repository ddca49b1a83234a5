package model

import "innkeeper/shared/model"

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID        = "id"
	FieldHotelID   = "hotel_id"
	FieldBookingID = "booking_id"
	FieldProvider  = "provider"
	FieldReference = "reference"
	FieldAmount    = "amount"
	FieldCurrency  = "currency"
	FieldStatus    = "status"

	StatusInitiated = "initiated"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"

	ProviderPaystack    = "paystack"
	ProviderFlutterwave = "flutterwave"
	ProviderStripe      = "stripe"
)

type Payment struct {
	ID        string `db:"id"`
	HotelID   string `db:"hotel_id"`
	BookingID string `db:"booking_id"`
	Provider  string `db:"provider"`
	Reference string `db:"reference"`
	Amount    int64  `db:"amount"`
	Currency  string `db:"currency"`
	Status    string `db:"status"`
	model.Metadata
}

// Settled reports whether the payment has reached a terminal state. Callbacks
// for settled payments are ignored so providers can retry safely.
func (p Payment) Settled() bool {
	return p.Status == StatusSucceeded || p.Status == StatusFailed
}
