package render

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/rollup"
)

// Amounts are encoded as JSON strings so no precision is lost.

type accountJSON struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	NormalBalance string `json:"normal_balance,omitempty"`
}

func newAccountJSON(a model.Account) accountJSON {
	return accountJSON{ID: a.ID, Name: a.Name, Type: string(a.Type), NormalBalance: string(a.NormalBalance)}
}

type windowJSON struct {
	Currency string `json:"currency"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
}

type trialBalanceRowJSON struct {
	Account accountJSON     `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

type trialBalanceDoc struct {
	windowJSON
	Rows        []trialBalanceRowJSON `json:"rows"`
	TotalDebit  decimal.Decimal       `json:"total_debit"`
	TotalCredit decimal.Decimal       `json:"total_credit"`
	Foots       bool                  `json:"foots"`
}

func trialBalanceJSON(rep rollup.TrialBalanceReport, rows []rollup.TrialBalanceRow, opts rollup.Options, currency string) trialBalanceDoc {
	doc := trialBalanceDoc{
		windowJSON:  windowJSON{Currency: currency, Start: opts.Start, End: opts.End},
		Rows:        make([]trialBalanceRowJSON, 0, len(rows)),
		TotalDebit:  rep.TotalDebit,
		TotalCredit: rep.TotalCredit,
		Foots:       rep.Foots,
	}
	for _, row := range rows {
		doc.Rows = append(doc.Rows, trialBalanceRowJSON{Account: newAccountJSON(row.Account), Debit: row.Debit, Credit: row.Credit})
	}
	return doc
}

type lineItemJSON struct {
	Account accountJSON     `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
}

func lineItemsJSON(items []rollup.LineItem) []lineItemJSON {
	out := make([]lineItemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, lineItemJSON{Account: newAccountJSON(it.Account), Amount: it.Amount})
	}
	return out
}

type incomeStatementDoc struct {
	windowJSON
	Revenue      []lineItemJSON  `json:"revenue"`
	Expenses     []lineItemJSON  `json:"expenses"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetIncome    decimal.Decimal `json:"net_income"`
}

func incomeStatementJSON(rep rollup.IncomeStatementReport, revenue, expenses []rollup.LineItem, opts rollup.Options, currency string) incomeStatementDoc {
	return incomeStatementDoc{
		windowJSON:   windowJSON{Currency: currency, Start: opts.Start, End: opts.End},
		Revenue:      lineItemsJSON(revenue),
		Expenses:     lineItemsJSON(expenses),
		TotalRevenue: rep.TotalRevenue,
		TotalExpense: rep.TotalExpense,
		NetIncome:    rep.NetIncome,
	}
}

type balanceSheetDoc struct {
	windowJSON
	Assets              []lineItemJSON  `json:"assets"`
	Liabilities         []lineItemJSON  `json:"liabilities"`
	Equity              []lineItemJSON  `json:"equity"`
	TotalAssets         decimal.Decimal `json:"total_assets"`
	TotalLiabilities    decimal.Decimal `json:"total_liabilities"`
	TotalEquity         decimal.Decimal `json:"total_equity"`
	CumulativeNetIncome decimal.Decimal `json:"cumulative_net_income"`
	RetainedEarningsID  string          `json:"retained_earnings_id,omitempty"`
	Balanced            bool            `json:"balanced"`
	EquationDelta       decimal.Decimal `json:"equation_delta"`
}

func balanceSheetJSON(rep rollup.BalanceSheetReport, assets, liabilities, equity []rollup.LineItem, opts rollup.Options, currency string) balanceSheetDoc {
	return balanceSheetDoc{
		windowJSON:          windowJSON{Currency: currency, End: opts.End},
		Assets:              lineItemsJSON(assets),
		Liabilities:         lineItemsJSON(liabilities),
		Equity:              lineItemsJSON(equity),
		TotalAssets:         rep.TotalAssets,
		TotalLiabilities:    rep.TotalLiabilities,
		TotalEquity:         rep.TotalEquity,
		CumulativeNetIncome: rep.CumulativeNetIncome,
		RetainedEarningsID:  rep.RetainedEarningsID,
		Balanced:            rep.Balanced,
		EquationDelta:       rep.EquationDelta,
	}
}

type ledgerEntryJSON struct {
	HeaderID string          `json:"header_id"`
	LineID   string          `json:"line_id"`
	Date     string          `json:"date"`
	Memo     string          `json:"memo,omitempty"`
	Ref      string          `json:"ref,omitempty"`
	Debit    decimal.Decimal `json:"debit"`
	Credit   decimal.Decimal `json:"credit"`
	Balance  decimal.Decimal `json:"balance"`
}

type ledgerGroupJSON struct {
	Account     accountJSON       `json:"account"`
	Entries     []ledgerEntryJSON `json:"entries"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
}

type ledgerDoc struct {
	windowJSON
	Groups []ledgerGroupJSON `json:"groups"`
}

func ledgerJSON(groups []rollup.LedgerGroup, opts rollup.Options, currency string) ledgerDoc {
	doc := ledgerDoc{
		windowJSON: windowJSON{Currency: currency, Start: opts.Start, End: opts.End},
		Groups:     make([]ledgerGroupJSON, 0, len(groups)),
	}
	for _, g := range groups {
		group := ledgerGroupJSON{
			Account:     newAccountJSON(g.Account),
			Entries:     make([]ledgerEntryJSON, 0, len(g.Entries)),
			TotalDebit:  g.TotalDebit,
			TotalCredit: g.TotalCredit,
		}
		for _, e := range g.Entries {
			group.Entries = append(group.Entries, ledgerEntryJSON{
				HeaderID: e.HeaderID, LineID: e.LineID, Date: e.Date, Memo: e.Memo, Ref: e.Ref,
				Debit: e.Debit, Credit: e.Credit, Balance: e.Balance,
			})
		}
		doc.Groups = append(doc.Groups, group)
	}
	return doc
}

func (r *Renderer) writeJSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
