package usecase

import "go.uber.org/fx"

// Module provides ledger use cases to the fx container.
var Module = fx.Provide(
	NewUserUseCase,
	NewLoanUseCase,
	NewRepaymentUseCase,
)
