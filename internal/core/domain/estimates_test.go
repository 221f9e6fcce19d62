package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimatePropertyValue_Defaults(t *testing.T) {
	// 1000 sqft House, 2/2, 1 парковка, 2000 год, Queens
	got := EstimatePropertyValue(ValuationAttributes{}.WithDefaults(), 2025)
	assert.Equal(t, int64(386333), got)
}

func TestEstimatePropertyValue_LocationAndType(t *testing.T) {
	base := ValuationAttributes{PropertyType: "Condo", AreaSqft: 1000}

	queens := base
	queens.City = "Queens"
	manhattan := base
	manhattan.City = "Manhattan"
	unknown := base
	unknown.City = "Springfield"

	assert.Equal(t, int64(250000), EstimatePropertyValue(queens, 2025))
	assert.Equal(t, int64(450000), EstimatePropertyValue(manhattan, 2025))
	assert.Equal(t, EstimatePropertyValue(queens, 2025), EstimatePropertyValue(unknown, 2025))

	castle := base
	castle.PropertyType = "Castle"
	assert.Equal(t, int64(200000), EstimatePropertyValue(castle, 2025))
}

func TestEstimatePropertyValue_MonotonicInArea(t *testing.T) {
	prev := int64(0)
	for area := 500; area <= 5000; area += 500 {
		v := EstimatePropertyValue(ValuationAttributes{PropertyType: "House", AreaSqft: area, City: "Brooklyn", YearBuilt: 1990}, 2025)
		assert.Greater(t, v, prev, "area %d", area)
		prev = v
	}
}

func TestEstimatePropertyValue_AgeBonus(t *testing.T) {
	attrs := ValuationAttributes{PropertyType: "House", AreaSqft: 1000}

	attrs.YearBuilt = 2025
	assert.Equal(t, int64(220000), EstimatePropertyValue(attrs, 2025))

	// дом "из будущего" считается новым
	attrs.YearBuilt = 2030
	assert.Equal(t, int64(220000), EstimatePropertyValue(attrs, 2025))

	// старше 30 лет - без надбавки
	attrs.YearBuilt = 1950
	assert.Equal(t, int64(200000), EstimatePropertyValue(attrs, 2025))
}

func TestValuationAttributes_Validate(t *testing.T) {
	assert.NoError(t, ValuationAttributes{}.Validate())
	assert.NoError(t, ValuationAttributes{AreaSqft: MaxAreaSqft, Bedrooms: MaxRoomCount, YearBuilt: MaxYearBuilt}.Validate())

	assert.ErrorIs(t, ValuationAttributes{Bedrooms: -1}.Validate(), ErrInvalidValuationInput)
	assert.ErrorIs(t, ValuationAttributes{AreaSqft: 1 << 40}.Validate(), ErrInvalidValuationInput)
	assert.ErrorIs(t, ValuationAttributes{Parking: MaxRoomCount + 1}.Validate(), ErrInvalidValuationInput)
	assert.ErrorIs(t, ValuationAttributes{YearBuilt: MaxYearBuilt + 1}.Validate(), ErrInvalidValuationInput)
}

func TestEstimatePropertyValue_LargestValidInputFits(t *testing.T) {
	attrs := ValuationAttributes{
		PropertyType: "Condo",
		AreaSqft:     MaxAreaSqft,
		Bedrooms:     MaxRoomCount,
		Bathrooms:    MaxRoomCount,
		Parking:      MaxRoomCount,
		YearBuilt:    2025,
		City:         "Manhattan",
	}
	require.NoError(t, attrs.Validate())

	v := EstimatePropertyValue(attrs, 2025)
	smaller := attrs
	smaller.AreaSqft--
	assert.Greater(t, v, EstimatePropertyValue(smaller, 2025))
}

func TestEstimatePropertyValue_SaturatesInsteadOfWrapping(t *testing.T) {
	v := EstimatePropertyValue(ValuationAttributes{PropertyType: "House", AreaSqft: 1 << 62, City: "Manhattan"}, 2025)
	assert.Equal(t, int64(math.MaxInt64), v)
}

func TestValuationResult_CompareWithPrice(t *testing.T) {
	r := ValuationResult{EstimatedValue: 386333}
	r.CompareWithPrice(400000)

	require.NotNil(t, r.Difference)
	require.NotNil(t, r.DifferencePercent)
	assert.Equal(t, -13667.0, *r.Difference)
	assert.InDelta(t, -3.42, *r.DifferencePercent, 1e-9)

	free := ValuationResult{EstimatedValue: 1000}
	free.CompareWithPrice(0)
	assert.Nil(t, free.DifferencePercent)
}

func TestEstimateLoan_Scenario(t *testing.T) {
	got, err := EstimateLoan(LoanInput{PropertyPrice: 500000, DownPaymentPercent: 20, InterestRate: 6.5, LoanTermYears: 30})
	require.NoError(t, err)

	assert.Equal(t, 100000.0, got.DownPayment)
	assert.Equal(t, 400000.0, got.LoanAmount)
	assert.Equal(t, 2528.0, got.MonthlyPayment)
	assert.InDelta(t, got.MonthlyPayment*360, got.TotalPayment, 360)
	assert.InDelta(t, got.TotalPayment-got.LoanAmount, got.TotalInterest, 1)
}

func TestEstimateLoan_ZeroRate(t *testing.T) {
	got, err := EstimateLoan(LoanInput{PropertyPrice: 120000, DownPaymentPercent: 0, InterestRate: 0, LoanTermYears: 10})
	require.NoError(t, err)

	assert.Equal(t, 1000.0, got.MonthlyPayment)
	assert.Equal(t, 120000.0, got.TotalPayment)
	assert.Equal(t, 0.0, got.TotalInterest)
}

func TestEstimateLoan_TinyRateSplitsEvenly(t *testing.T) {
	got, err := EstimateLoan(LoanInput{PropertyPrice: 500000, DownPaymentPercent: 20, InterestRate: 1e-15, LoanTermYears: 30})
	require.NoError(t, err)

	assert.Equal(t, math.Round(400000.0/360), got.MonthlyPayment)
	assert.InDelta(t, 400000.0, got.TotalPayment, 1)
	assert.InDelta(t, 0.0, got.TotalInterest, 1)
}

func TestEstimateLoan_BoundsStayFinite(t *testing.T) {
	got, err := EstimateLoan(LoanInput{PropertyPrice: 500000, DownPaymentPercent: 0, InterestRate: MaxInterestRate, LoanTermYears: MaxLoanTermYears})
	require.NoError(t, err)

	for _, v := range []float64{got.MonthlyPayment, got.TotalPayment, got.TotalInterest} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
	_, err = json.Marshal(got)
	assert.NoError(t, err)
}

func TestEstimateLoan_FullDownPayment(t *testing.T) {
	got, err := EstimateLoan(LoanInput{PropertyPrice: 300000, DownPaymentPercent: 100, InterestRate: 5, LoanTermYears: 15})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.LoanAmount)
	assert.Equal(t, 0.0, got.MonthlyPayment)
}

func TestLoanInput_Validate(t *testing.T) {
	valid := LoanInput{PropertyPrice: 1, DownPaymentPercent: 20, InterestRate: 6.5, LoanTermYears: 30}
	require.NoError(t, valid.Validate())

	cases := map[string]func(*LoanInput){
		"zero price":    func(in *LoanInput) { in.PropertyPrice = 0 },
		"nan price":     func(in *LoanInput) { in.PropertyPrice = math.NaN() },
		"down over 100": func(in *LoanInput) { in.DownPaymentPercent = 101 },
		"negative down": func(in *LoanInput) { in.DownPaymentPercent = -1 },
		"negative rate": func(in *LoanInput) { in.InterestRate = -0.5 },
		"infinite rate": func(in *LoanInput) { in.InterestRate = math.Inf(1) },
		"zero term":     func(in *LoanInput) { in.LoanTermYears = 0 },
		"huge rate":     func(in *LoanInput) { in.InterestRate = 1e6 },
		"huge term":     func(in *LoanInput) { in.LoanTermYears = 1e6 },
		"huge price":    func(in *LoanInput) { in.PropertyPrice = 1e308 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			_, err := EstimateLoan(in)
			assert.ErrorIs(t, err, ErrInvalidLoanInput)
		})
	}
}
