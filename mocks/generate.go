package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/argo-dashboard/pkg/marketdata/provider Provider
//go:generate mockgen -destination=./mock_dashboard.go -package=mocks github.com/rxtech-lab/argo-dashboard/internal/dashboard MarketData,Predictor,Pipeline
