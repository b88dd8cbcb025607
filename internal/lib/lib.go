// Package lib groups the service's integration libraries: background jobs
// (job), transactional email (email) and small helpers (utils).
package lib
