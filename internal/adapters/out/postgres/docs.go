// Package postgres holds the helpers the relational adapters share, such as opening a
// gorm handle and classifying driver errors into duplicate writes and connectivity
// failures.
//
// The head office database is read through headoffice and receives its store summary
// there; the reporting database receives the daily summary through reporting.
package postgres
