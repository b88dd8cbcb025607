// Package handler is the HTTP layer between the router and the services.
// It binds requests, runs struct-tag validation where a request has any,
// calls the service and writes the JSON response.
package handler
