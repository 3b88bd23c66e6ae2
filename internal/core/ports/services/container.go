package services

// ServiceContainer bundles the service facades for injection into the HTTP
// layer.
type ServiceContainer struct {
	User        UserSvcFacade
	Wallet      WalletSvcFacade
	Transaction TransactionSvcFacade
	Budget      BudgetSvcFacade
	Goal        GoalSvcFacade
	Reporting   ReportingSvcFacade
}
