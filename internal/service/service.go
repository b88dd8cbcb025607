// Package service contains the business logic.
//
// It sits between the handler and repository layers: it validates task
// submissions, persists the valid ones and schedules their follow-up work.
package service
