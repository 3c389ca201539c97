//go:build integration

// Package testinfra starts throwaway containers for integration tests.
// Tests using it carry the integration build tag:
//
//	go test -tags integration ./...
package testinfra
