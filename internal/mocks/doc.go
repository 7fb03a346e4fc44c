// Package mocks holds testify mocks for the repository, provider and
// event interfaces shared by the service tests.
package mocks
