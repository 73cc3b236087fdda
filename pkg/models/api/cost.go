package api

type CostPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type ServiceCost struct {
	Service string `json:"service"`
	Cost    string `json:"cost"`
	Unit    string `json:"unit"`
}

type CurrentCost struct {
	Period    CostPeriod    `json:"period"`
	TotalCost string        `json:"totalCost"`
	Currency  string        `json:"currency"`
	ByService []ServiceCost `json:"byService"`
}

type MonthCost struct {
	Period string `json:"period"`
	Cost   string `json:"cost"`
	Unit   string `json:"unit"`
}

type CostTrend struct {
	Trend []MonthCost `json:"trend"`
}

type BudgetAmount struct {
	Amount string `json:"amount,omitempty"`
	Unit   string `json:"unit,omitempty"`
}

type Budget struct {
	Name     string       `json:"name"`
	Type     string       `json:"type,omitempty"`
	Limit    BudgetAmount `json:"limit"`
	Actual   BudgetAmount `json:"actual"`
	Forecast BudgetAmount `json:"forecast"`
	TimeUnit string       `json:"timeUnit,omitempty"`
}

type BudgetList struct {
	Budgets []Budget `json:"budgets"`
	Total   int      `json:"total"`
}
