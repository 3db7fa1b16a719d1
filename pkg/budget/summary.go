package budget

import "github.com/shopspring/decimal"

type StatusSummary struct {
	Count int
	Total decimal.Decimal
}

// Summary aggregates a list of budgets for the reports page.
type Summary struct {
	Count    int
	Total    decimal.Decimal
	ByStatus map[Status]StatusSummary
	// Unparsed counts budgets whose value could not be read and is missing from the totals.
	Unparsed int
}

func Summarize(budgets []Budget) Summary {
	summary := Summary{
		Total:    decimal.Zero,
		ByStatus: make(map[Status]StatusSummary, len(Statuses)),
	}
	for _, status := range Statuses {
		summary.ByStatus[status] = StatusSummary{Total: decimal.Zero}
	}

	for _, b := range budgets {
		summary.Count++
		statusSummary := summary.ByStatus[b.Status]
		statusSummary.Count++

		value, err := ParseCurrency(b.Value)
		if err != nil {
			summary.Unparsed++
		} else {
			summary.Total = summary.Total.Add(value)
			statusSummary.Total = statusSummary.Total.Add(value)
		}
		summary.ByStatus[b.Status] = statusSummary
	}
	return summary
}
