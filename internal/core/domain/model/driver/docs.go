// Package driver models delivery drivers and their post code coverage ranges.
// Drivers are read-only reference data: this service never creates or edits them.
package driver
