// Package logging persists matching runs so they can be audited later. Stores
// append one RunRecord per run and answer RunQuery filters by time window,
// status and participant.
package logging
