package models

import "time"

// PaymentMethod is where a member sends money for a sitter's booking.
// Only PromptPay is supported; AccountName and BankName are kept for the app's form.
type PaymentMethod struct {
	ID              string    `bson:"id" json:"payment_method_id"`
	SitterID        string    `bson:"sitter_id" json:"sitter_id"`
	PromptPayNumber string    `bson:"promptpay_number" json:"promptpay_number"`
	AccountName     string    `bson:"account_name" json:"account_name"`
	BankName        string    `bson:"bank_name" json:"bank_name"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}

// IncomeEntry is one row of a sitter's income report.
type IncomeEntry struct {
	BookingDate string    `json:"booking_date"`
	ShortName   string    `json:"short_name"`
	TotalIncome float64   `json:"total_income"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// IncomeSummary totals a sitter's paid work.
type IncomeSummary struct {
	TotalIncome float64 `json:"total_income"`
	TotalJobs   int     `json:"total_jobs"`
}

// IncomeStats is the income screen payload.
type IncomeStats struct {
	Stats       IncomeSummary `json:"stats"`
	IncomeStats []IncomeEntry `json:"incomeStats"`
}
