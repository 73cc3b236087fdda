package domain

// Monetary amounts are kept as the decimal strings reported by Cost Explorer,
// re-rendered at a fixed precision, so no float drift leaks into responses.

type ServiceCost struct {
	Service string
	Cost    string // 4 decimal places
	Unit    string
}

type CostSnapshot struct {
	PeriodStart string
	PeriodEnd   string
	TotalCost   string // 4 decimal places
	Currency    string
	ByService   []ServiceCost // sorted descending by cost
}

type MonthCost struct {
	Period string // first day of the month, YYYY-MM-DD
	Cost   string // 2 decimal places
	Unit   string
}

type BudgetAmount struct {
	Amount string
	Unit   string
}

type Budget struct {
	Name     string
	Type     string
	Limit    BudgetAmount
	Actual   BudgetAmount
	Forecast BudgetAmount
	TimeUnit string
}
