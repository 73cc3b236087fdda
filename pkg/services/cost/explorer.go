package cost

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/cloudops-tools/cloudops/pkg/models/domain"
	"github.com/cloudops-tools/cloudops/pkg/services/awsclients"
)

const (
	costMetric   = "UnblendedCost"
	trendMonths  = 6
	dateLayout   = "2006-01-02"
	defaultCurr  = "USD"
	servicePrec  = 4
	trailingPrec = 2
)

// Explorer aggregates Cost Explorer and Budgets data for one account.
type Explorer interface {
	// CurrentMonth reports [first-of-month, today) grouped by service,
	// sorted descending by cost.
	CurrentMonth(ctx context.Context) (domain.CostSnapshot, error)

	// TrailingTrend reports the trailing six calendar months in
	// chronological order.
	TrailingTrend(ctx context.Context) ([]domain.MonthCost, error)

	// Budgets lists configured budgets; an account with none returns an
	// empty slice, not an error.
	Budgets(ctx context.Context, accountID string) ([]domain.Budget, error)
}

type explorer struct {
	ce      awsclients.CostExplorerAPI
	budgets awsclients.BudgetsAPI
	now     func() time.Time
}

func NewExplorer(ce awsclients.CostExplorerAPI, budgetsClient awsclients.BudgetsAPI) Explorer {
	return &explorer{ce: ce, budgets: budgetsClient, now: time.Now}
}

func (e *explorer) CurrentMonth(ctx context.Context) (domain.CostSnapshot, error) {
	now := e.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(dateLayout)
	end := now.Format(dateLayout)

	resp, err := e.ce.GetCostAndUsage(ctx, &costexplorer.GetCostAndUsageInput{
		TimePeriod: &cetypes.DateInterval{
			Start: aws.String(start),
			End:   aws.String(end),
		},
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{costMetric},
		GroupBy: []cetypes.GroupDefinition{
			{Type: cetypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
		},
	})
	if err != nil {
		return domain.CostSnapshot{}, fmt.Errorf("get current month cost: %w", err)
	}

	snapshot := domain.CostSnapshot{
		PeriodStart: start,
		PeriodEnd:   end,
		TotalCost:   formatAmount("0", servicePrec),
		Currency:    defaultCurr,
	}

	if len(resp.ResultsByTime) == 0 {
		return snapshot, nil
	}
	result := resp.ResultsByTime[0]

	if total, ok := result.Total[costMetric]; ok {
		snapshot.TotalCost = formatAmount(aws.ToString(total.Amount), servicePrec)
		if unit := aws.ToString(total.Unit); unit != "" {
			snapshot.Currency = unit
		}
	}

	for _, group := range result.Groups {
		var service string
		if len(group.Keys) > 0 {
			service = group.Keys[0]
		}
		metric := group.Metrics[costMetric]
		snapshot.ByService = append(snapshot.ByService, domain.ServiceCost{
			Service: service,
			Cost:    formatAmount(aws.ToString(metric.Amount), servicePrec),
			Unit:    aws.ToString(metric.Unit),
		})
	}

	sort.SliceStable(snapshot.ByService, func(i, j int) bool {
		return parseAmount(snapshot.ByService[i].Cost) > parseAmount(snapshot.ByService[j].Cost)
	})

	return snapshot, nil
}

func (e *explorer) TrailingTrend(ctx context.Context) ([]domain.MonthCost, error) {
	now := e.now()
	start := time.Date(now.Year(), now.Month()-trendMonths+1, 1, 0, 0, 0, 0, now.Location()).Format(dateLayout)
	end := now.Format(dateLayout)

	resp, err := e.ce.GetCostAndUsage(ctx, &costexplorer.GetCostAndUsageInput{
		TimePeriod: &cetypes.DateInterval{
			Start: aws.String(start),
			End:   aws.String(end),
		},
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{costMetric},
	})
	if err != nil {
		return nil, fmt.Errorf("get cost trend: %w", err)
	}

	trend := make([]domain.MonthCost, 0, len(resp.ResultsByTime))
	for _, result := range resp.ResultsByTime {
		month := domain.MonthCost{
			Cost: formatAmount("0", trailingPrec),
			Unit: defaultCurr,
		}
		if result.TimePeriod != nil {
			month.Period = aws.ToString(result.TimePeriod.Start)
		}
		if total, ok := result.Total[costMetric]; ok {
			month.Cost = formatAmount(aws.ToString(total.Amount), trailingPrec)
			if unit := aws.ToString(total.Unit); unit != "" {
				month.Unit = unit
			}
		}
		trend = append(trend, month)
	}

	return trend, nil
}

func (e *explorer) Budgets(ctx context.Context, accountID string) ([]domain.Budget, error) {
	resp, err := e.budgets.DescribeBudgets(ctx, &budgets.DescribeBudgetsInput{
		AccountId: aws.String(accountID),
	})
	if err != nil {
		return nil, fmt.Errorf("describe budgets: %w", err)
	}

	result := make([]domain.Budget, 0, len(resp.Budgets))
	for _, b := range resp.Budgets {
		budget := domain.Budget{
			Name:     aws.ToString(b.BudgetName),
			Type:     string(b.BudgetType),
			TimeUnit: string(b.TimeUnit),
		}
		if b.BudgetLimit != nil {
			budget.Limit = domain.BudgetAmount{
				Amount: aws.ToString(b.BudgetLimit.Amount),
				Unit:   aws.ToString(b.BudgetLimit.Unit),
			}
		}
		if b.CalculatedSpend != nil {
			if actual := b.CalculatedSpend.ActualSpend; actual != nil {
				budget.Actual = domain.BudgetAmount{
					Amount: aws.ToString(actual.Amount),
					Unit:   aws.ToString(actual.Unit),
				}
			}
			if forecast := b.CalculatedSpend.ForecastedSpend; forecast != nil {
				budget.Forecast = domain.BudgetAmount{
					Amount: aws.ToString(forecast.Amount),
					Unit:   aws.ToString(forecast.Unit),
				}
			}
		}
		result = append(result, budget)
	}

	return result, nil
}

// formatAmount re-renders a Cost Explorer decimal string at a fixed
// precision. Unparseable input renders as zero.
func formatAmount(amount string, precision int) string {
	return strconv.FormatFloat(parseAmount(amount), 'f', precision, 64)
}

func parseAmount(amount string) float64 {
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0
	}
	return v
}
