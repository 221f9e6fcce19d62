package constants

// Префиксы ключей кэша расчетов
const (
	CacheKeyValuation = "estimate:valuation:"
	CacheKeyLoan      = "estimate:loan:"
)
