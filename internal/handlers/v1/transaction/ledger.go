package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/payments-portal/internal/auth"
	"github.com/carson-networks/payments-portal/internal/handlers/v1/apiutil"
	"github.com/carson-networks/payments-portal/internal/ledger"
	"github.com/carson-networks/payments-portal/internal/logging"
	"github.com/carson-networks/payments-portal/internal/service"
)

type ledgerReader interface {
	Balance(ctx context.Context, principal *auth.Principal) (*service.Statement, error)
	History(ctx context.Context, principal *auth.Principal) ([]service.Transaction, error)
	Summary(ctx context.Context, principal *auth.Principal) (ledger.Summary, error)
}

// BalanceBody is the response body for GET /users/me/balance.
type BalanceBody struct {
	Balance      string        `json:"balance" doc:"Approved incoming minus approved outgoing, settlement currency"`
	Transactions []Transaction `json:"transactions" doc:"All of the caller's transactions, newest first"`
}

type BalanceOutput struct {
	Body BalanceBody
}

type HistoryOutput struct {
	Body TransactionsBody
}

// SummaryBody is the response body for GET /users/me/summary.
type SummaryBody struct {
	MoneyIn  string `json:"moneyIn" doc:"Sum of incoming amounts"`
	MoneyOut string `json:"moneyOut" doc:"Sum of outgoing amounts"`
	NoData   bool   `json:"noData" doc:"Set when the caller has no transactions"`
}

type SummaryOutput struct {
	Body SummaryBody
}

// LedgerHandler serves the caller's balance, history and summary.
type LedgerHandler struct {
	LedgerService ledgerReader
}

func NewLedgerHandler(svc ledgerReader) *LedgerHandler {
	return &LedgerHandler{LedgerService: svc}
}

func (h *LedgerHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-balance",
		Method:      http.MethodGet,
		Path:        "/users/me/balance",
		Summary:     "Balance and history",
		Description: "Returns the caller's balance together with their transactions.",
		Tags:        []string{"Ledger"},
		Security:    apiutil.Secured,
	}, h.balance)

	huma.Register(api, huma.Operation{
		OperationID: "get-history",
		Method:      http.MethodGet,
		Path:        "/payments/history",
		Summary:     "Transaction history",
		Description: "Returns the caller's transactions, newest first.",
		Tags:        []string{"Ledger"},
		Security:    apiutil.Secured,
	}, h.history)

	huma.Register(api, huma.Operation{
		OperationID: "get-summary",
		Method:      http.MethodGet,
		Path:        "/users/me/summary",
		Summary:     "Money in vs money out",
		Tags:        []string{"Ledger"},
		Security:    apiutil.Secured,
	}, h.summary)
}

func (h *LedgerHandler) balance(ctx context.Context, _ *struct{}) (*BalanceOutput, error) {
	principal, err := apiutil.Principal(ctx)
	if err != nil {
		return nil, err
	}

	var statement *service.Statement
	apiutil.Time(ctx, "balanceMs", func() {
		statement, err = h.LedgerService.Balance(ctx, principal)
	})
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to load balance")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transactionCount", len(statement.Transactions))
	}
	return &BalanceOutput{Body: BalanceBody{
		Balance:      statement.Balance.StringFixed(2),
		Transactions: FromServiceList(statement.Transactions),
	}}, nil
}

func (h *LedgerHandler) history(ctx context.Context, _ *struct{}) (*HistoryOutput, error) {
	principal, err := apiutil.Principal(ctx)
	if err != nil {
		return nil, err
	}

	txs, err := h.LedgerService.History(ctx, principal)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to load history")
	}
	return &HistoryOutput{Body: TransactionsBody{Transactions: FromServiceList(txs)}}, nil
}

func (h *LedgerHandler) summary(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
	principal, err := apiutil.Principal(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := h.LedgerService.Summary(ctx, principal)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to load summary")
	}
	return &SummaryOutput{Body: SummaryBody{
		MoneyIn:  summary.MoneyIn.StringFixed(2),
		MoneyOut: summary.MoneyOut.StringFixed(2),
		NoData:   summary.NoData,
	}}, nil
}
