package validation

import "github.com/shopspring/decimal"

type InitiatePaymentRequest struct {
	BookingID string `json:"booking_id"`
}

func (v *Validator) InitiatePayment(req *InitiatePaymentRequest) {
	v.Required("booking_id", req.BookingID)
}

type WithdrawRequest struct {
	Amount      decimal.Decimal   `json:"amount"`
	BankDetails map[string]string `json:"bank_details"`
}

func (v *Validator) Withdraw(req *WithdrawRequest) {
	v.Amount("amount", req.Amount)
	v.Check(len(req.BankDetails) > 0, "bank_details", "is required")
	v.Check(len(req.BankDetails) <= MaxBankFields, "bank_details", "has too many fields")
	for k, val := range req.BankDetails {
		v.Check(len(k) <= MaxBankFieldLength && len(val) <= MaxBankFieldLength, "bank_details", "field is too long")
	}
}
