package handler

import (
	billshandler "budgetbuddy-go/internal/transport/httpserver/handler/bills"
	commonhandler "budgetbuddy-go/internal/transport/httpserver/handler/common"
	transactionshandler "budgetbuddy-go/internal/transport/httpserver/handler/transactions"
)

type Handlers struct {
	Common       *commonhandler.Handlers
	Transactions *transactionshandler.Handlers
	Bills        *billshandler.Handlers
}

func New(common *commonhandler.Handlers, transactions *transactionshandler.Handlers, bills *billshandler.Handlers) *Handlers {
	return &Handlers{
		Common:       common,
		Transactions: transactions,
		Bills:        bills,
	}
}
