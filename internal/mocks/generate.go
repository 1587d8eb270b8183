// Package mocks provides generated mocks for port interfaces.
//
// Mocks are generated with go.uber.org/mock (gomock) via go:generate
// directives. To regenerate after interface changes, run:
//
//	go generate ./internal/mocks
package mocks

// Generate mock for the AuthAPI port. This creates MockAuthAPI with
// Login, Register, and Refresh methods for controller tests.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=auth_api_mock.go github.com/mocksmith/adminctl/internal/ports AuthAPI

// Generate mock for the Storage port. This creates MockStorage with
// Read, Write, and Delete methods for failure-injection tests.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=storage_mock.go github.com/mocksmith/adminctl/internal/ports Storage
