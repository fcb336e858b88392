// Package api adapts HTTP requests to the service layer. Handlers decode and
// validate JSON, take the caller's domain.Principal from the request context,
// call a service and map its error onto a status code and a safe message.
package api
