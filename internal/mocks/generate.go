// Package mocks provides mock implementations of the ports for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockReportsAPI(ctrl)
//	api.EXPECT().ListUnits(gomock.Any()).Return(units, nil)
package mocks

// Generate mock for ReportsAPI interface from internal/ports package.
// This creates MockReportsAPI with methods for all ReportsAPI interface methods:
// ListUnits, Dashboard, Releases, ListReports, GetReport, CreateReport, UpdateReport, DeleteReport, ListTargets, SaveTarget
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=reports_api_mock.go github.com/sigmaport/prodmon-ui/internal/ports ReportsAPI

// Generate mock for TokenStore interface from internal/ports package.
// This creates MockTokenStore with methods: Load, Save, Clear
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=token_store_mock.go github.com/sigmaport/prodmon-ui/internal/ports TokenStore

// Generate mock for Authenticator interface from internal/ports package.
// This creates MockAuthenticator with methods: Login
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=authenticator_mock.go github.com/sigmaport/prodmon-ui/internal/ports Authenticator
