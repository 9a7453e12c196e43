// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// data from handlers and drives the generic repository. All soft-delete and
// pagination behavior comes from the repository; services only decide which
// filters and columns to pass.
package service
