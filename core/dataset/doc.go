// Package dataset loads populations: participant documents in JSON or YAML,
// plain-text score matrices and line-per-participant lists.
package dataset
