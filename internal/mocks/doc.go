// Package mocks provides hand-written test doubles for the service
// interfaces. Each mock method calls its Fn field when set and otherwise
// returns the default values configured on the mock.
package mocks
