package accounts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

var templates = map[string]func() []model.Account{
	"household": householdChart,
}

// Templates lists the starter chart names accepted by DefaultChart.
func Templates() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultChart returns the starter chart of accounts for a book template.
func DefaultChart(template string) ([]model.Account, error) {
	build, ok := templates[template]
	if !ok {
		return nil, fmt.Errorf("unknown template %q (want one of %s)", template, strings.Join(Templates(), ", "))
	}
	return build(), nil
}

func householdChart() []model.Account {
	return []model.Account{
		{ID: "1010", Name: "Checking", Type: model.AccountTypeAsset, Subtype: "cash"},
		{ID: "1020", Name: "Savings", Type: model.AccountTypeAsset, Subtype: "cash"},
		{ID: "1100", Name: "Brokerage", Type: model.AccountTypeAsset, Subtype: "investments"},
		{ID: "2010", Name: "Credit Card", Type: model.AccountTypeLiability, Subtype: "revolving"},
		{ID: "2100", Name: "Car Loan", Type: model.AccountTypeLiability, Subtype: "loans"},
		{ID: "3010", Name: "Opening Balance", Type: model.AccountTypeEquity},
		{ID: "3900", Name: "Retained Earnings", Type: model.AccountTypeEquity, RetainedEarnings: true},
		{ID: "4010", Name: "Salary", Type: model.AccountTypeRevenue},
		{ID: "4020", Name: "Interest Income", Type: model.AccountTypeRevenue},
		{ID: "5010", Name: "Rent", Type: model.AccountTypeExpense, Subtype: "housing"},
		{ID: "5020", Name: "Utilities", Type: model.AccountTypeExpense, Subtype: "housing"},
		{ID: "5030", Name: "Groceries", Type: model.AccountTypeExpense, Subtype: "food"},
		{ID: "5040", Name: "Dining Out", Type: model.AccountTypeExpense, Subtype: "food"},
		{ID: "5050", Name: "Transportation", Type: model.AccountTypeExpense},
	}
}
