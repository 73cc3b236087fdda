package aws

import (
	"net/http"

	"github.com/cloudops-tools/cloudops/pkg/handlers/render"
	"github.com/cloudops-tools/cloudops/pkg/models/api"
	"github.com/cloudops-tools/cloudops/pkg/server/middleware"
)

func (h *Handler) CurrentCost(w http.ResponseWriter, r *http.Request) {
	explorer, _, err := h.account.Cost(middleware.PrincipalID(r.Context()))
	if err != nil {
		render.UpstreamError(w, r, err)
		return
	}

	snapshot, err := explorer.CurrentMonth(r.Context())
	if err != nil {
		render.UpstreamError(w, r, err)
		return
	}

	response := api.CurrentCost{
		Period:    api.CostPeriod{Start: snapshot.PeriodStart, End: snapshot.PeriodEnd},
		TotalCost: snapshot.TotalCost,
		Currency:  snapshot.Currency,
		ByService: make([]api.ServiceCost, 0, len(snapshot.ByService)),
	}
	for _, sc := range snapshot.ByService {
		response.ByService = append(response.ByService, api.ServiceCost{
			Service: sc.Service,
			Cost:    sc.Cost,
			Unit:    sc.Unit,
		})
	}

	render.JSON(w, r, http.StatusOK, response)
}

func (h *Handler) CostTrend(w http.ResponseWriter, r *http.Request) {
	explorer, _, err := h.account.Cost(middleware.PrincipalID(r.Context()))
	if err != nil {
		render.UpstreamError(w, r, err)
		return
	}

	trend, err := explorer.TrailingTrend(r.Context())
	if err != nil {
		render.UpstreamError(w, r, err)
		return
	}

	response := api.CostTrend{Trend: make([]api.MonthCost, 0, len(trend))}
	for _, month := range trend {
		response.Trend = append(response.Trend, api.MonthCost{
			Period: month.Period,
			Cost:   month.Cost,
			Unit:   month.Unit,
		})
	}

	render.JSON(w, r, http.StatusOK, response)
}

func (h *Handler) Budgets(w http.ResponseWriter, r *http.Request) {
	explorer, accountID, err := h.account.Cost(middleware.PrincipalID(r.Context()))
	if err != nil {
		render.UpstreamError(w, r, err)
		return
	}

	budgets, err := explorer.Budgets(r.Context(), accountID)
	if err != nil {
		render.UpstreamError(w, r, err)
		return
	}

	response := api.BudgetList{Budgets: make([]api.Budget, 0, len(budgets))}
	for _, b := range budgets {
		response.Budgets = append(response.Budgets, api.Budget{
			Name:     b.Name,
			Type:     b.Type,
			Limit:    api.BudgetAmount{Amount: b.Limit.Amount, Unit: b.Limit.Unit},
			Actual:   api.BudgetAmount{Amount: b.Actual.Amount, Unit: b.Actual.Unit},
			Forecast: api.BudgetAmount{Amount: b.Forecast.Amount, Unit: b.Forecast.Unit},
			TimeUnit: b.TimeUnit,
		})
	}
	response.Total = len(response.Budgets)

	render.JSON(w, r, http.StatusOK, response)
}
