// Package mocks provides testify mocks for the store and service
// interfaces, shared by the service and API tests.
//
//	users := new(mocks.UserStore)
//	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, store.ErrUserNotFound)
//
// Methods returning a pointer accept nil as the first return value.
package mocks
