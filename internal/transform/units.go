package transform

import (
	"strings"

	"paldata/pkg/contracts/domain"
)

// unitKeyword maps an indicator-name substring to a unit. First match in
// declaration order wins.
type unitKeyword struct {
	keyword string
	unit    domain.Unit
}

var unitKeywords = []unitKeyword{
	{"%", domain.UnitPercentage},
	{"percent", domain.UnitPercentage},
	{"share of", domain.UnitPercentage},
	{"us$", domain.UnitCurrencyUSD},
	{"usd", domain.UnitCurrencyUSD},
	{"current us", domain.UnitCurrencyUSD},
	{"constant us", domain.UnitCurrencyUSD},
	{"per 1,000", domain.UnitRate},
	{"per 100,000", domain.UnitRate},
	{"per capita", domain.UnitRate},
	{"years", domain.UnitYears},
	{"index", domain.UnitIndex},
}

// InferUnit derives a measurement unit from an indicator's name. Names
// matching no keyword default to a plain count.
func InferUnit(indicatorName string) domain.Unit {
	lower := strings.ToLower(indicatorName)
	for _, kw := range unitKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.unit
		}
	}
	return domain.UnitCount
}
