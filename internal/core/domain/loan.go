package domain

import (
	"fmt"
	"math"
)

// Параметры ипотеки по умолчанию
const (
	DefaultDownPaymentPercent = 20.0
	DefaultInterestRate       = 6.5
	DefaultLoanTermYears      = 30.0
)

// Верхние границы входных параметров
const (
	MaxInterestRate  = 100.0
	MaxLoanTermYears = 100.0
)

// AffordabilityTips возвращаются вместе с каждым расчетом.
var AffordabilityTips = []string{
	"Monthly payment should not exceed 28% of your gross monthly income",
	"Total debt payments (including mortgage) should not exceed 36% of gross income",
	"Consider a larger down payment to reduce monthly payments",
	"Shop around for the best interest rates",
}

// LoanInput - параметры расчета. Проценты передаются в процентах (6.5, а не 0.065).
type LoanInput struct {
	PropertyPrice      float64 `json:"property_price"`
	DownPaymentPercent float64 `json:"down_payment_percent"`
	InterestRate       float64 `json:"interest_rate"`
	LoanTermYears      float64 `json:"loan_term_years"`
}

// LoanEstimate - результат расчета. Не хранится.
type LoanEstimate struct {
	PropertyPrice      float64 `json:"property_price"`
	DownPaymentPercent float64 `json:"down_payment_percent"`
	DownPayment        float64 `json:"down_payment"`
	LoanAmount         float64 `json:"loan_amount"`
	InterestRate       float64 `json:"interest_rate"`
	LoanTermYears      float64 `json:"loan_term_years"`
	MonthlyPayment     float64 `json:"monthly_payment"`
	TotalInterest      float64 `json:"total_interest"`
	TotalPayment       float64 `json:"total_payment"`
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (in LoanInput) Validate() error {
	if !finite(in.PropertyPrice) || in.PropertyPrice <= 0 {
		return fmt.Errorf("%w: valid property price is required", ErrInvalidLoanInput)
	}
	if !finite(in.DownPaymentPercent) || in.DownPaymentPercent < 0 || in.DownPaymentPercent > 100 {
		return fmt.Errorf("%w: down payment percent must be between 0 and 100", ErrInvalidLoanInput)
	}
	if !finite(in.InterestRate) || in.InterestRate < 0 || in.InterestRate > MaxInterestRate {
		return fmt.Errorf("%w: interest rate must be between 0 and %.0f", ErrInvalidLoanInput, MaxInterestRate)
	}
	if !finite(in.LoanTermYears) || in.LoanTermYears <= 0 || in.LoanTermYears > MaxLoanTermYears {
		return fmt.Errorf("%w: loan term must be between 0 and %.0f years", ErrInvalidLoanInput, MaxLoanTermYears)
	}
	return nil
}

// EstimateLoan считает аннуитетный платеж. При нулевой ставке (или настолько малой, что
// (1+r)^n неотличимо от 1) долг делится поровну на все месяцы.
// Платеж, проценты и итог округляются до целых от неокругленного платежа.
func EstimateLoan(in LoanInput) (*LoanEstimate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	downPayment := in.PropertyPrice * in.DownPaymentPercent / 100
	loanAmount := in.PropertyPrice - downPayment
	monthlyRate := in.InterestRate / 100 / 12
	months := in.LoanTermYears * 12

	monthly := loanAmount / months
	if monthlyRate > 0 {
		growth := math.Pow(1+monthlyRate, months)
		if growth-1 > 0 {
			monthly = loanAmount * monthlyRate * growth / (growth - 1)
		}
	}

	totalPayment := monthly * months
	totalInterest := totalPayment - loanAmount

	for _, v := range []float64{downPayment, loanAmount, monthly, totalPayment, totalInterest} {
		if !finite(v) {
			return nil, fmt.Errorf("%w: values are out of range", ErrInvalidLoanInput)
		}
	}

	return &LoanEstimate{
		PropertyPrice:      in.PropertyPrice,
		DownPaymentPercent: in.DownPaymentPercent,
		DownPayment:        downPayment,
		LoanAmount:         loanAmount,
		InterestRate:       in.InterestRate,
		LoanTermYears:      in.LoanTermYears,
		MonthlyPayment:     math.Round(monthly),
		TotalInterest:      math.Round(totalInterest),
		TotalPayment:       math.Round(totalPayment),
	}, nil
}
