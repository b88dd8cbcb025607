// Package middleware holds the global and route-level echo middleware:
// request ids, request-scoped logging, New Relic tracing, CORS, Clerk
// authentication, rate limiting and the global error handler.
package middleware
