package dto

import (
	"github.com/google/uuid"

	"innkeeper/internal/domains/payment/model"
	"innkeeper/shared"
	gDto "innkeeper/shared/dto"
	gModel "innkeeper/shared/model"
	"innkeeper/shared/timezone"
)

type InitiatePaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
	Provider  string `json:"provider"   validate:"required,oneof=paystack flutterwave stripe"`
}

func (r *InitiatePaymentRequest) ToModel(user, hotelID, reference string, amount int64, currency string) model.Payment {
	return model.Payment{
		ID:        uuid.NewString(),
		HotelID:   hotelID,
		BookingID: r.BookingID,
		Provider:  r.Provider,
		Reference: reference,
		Amount:    amount,
		Currency:  currency,
		Status:    model.StatusInitiated,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type InitiatePaymentResponse struct {
	PaymentID   string `json:"payment_id"`
	Reference   string `json:"reference"`
	CheckoutURL string `json:"checkout_url"`
}

// CallbackRequest is the redirect payload from a provider. Only the reference
// is trusted; the final status always comes from a verify call back to the
// provider.
type CallbackRequest struct {
	Reference string `json:"reference" validate:"required"`
}

type PaymentResponse struct {
	ID        string `json:"id"`
	HotelID   string `json:"hotel_id"`
	BookingID string `json:"booking_id"`
	Provider  string `json:"provider"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(mod model.Payment) {
	r.ID = mod.ID
	r.HotelID = mod.HotelID
	r.BookingID = mod.BookingID
	r.Provider = mod.Provider
	r.Reference = mod.Reference
	r.Amount = mod.Amount
	r.Currency = mod.Currency
	r.Status = mod.Status
	r.Metadata.FromModel(mod.Metadata)
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}
