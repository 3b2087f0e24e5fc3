// Package summary holds the end-of-day aggregate written to the relational stores.
package summary
