// Package store persists AI-generated chapter annotations in SQLite.
//
// The Store is the system of record for batch analysis output: chapter rows
// keyed by household and day, plus run rows tracking each batch invocation.
// The feed and report commands read from here; the batch and analyze
// commands write.
//
// Schema changes bump the version in schema.go; users clear the database to
// adopt the new schema.
package store
