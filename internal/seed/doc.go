// Package seed generates plausible chapter data so the feed and report
// views can be exercised without API credentials or real footage.
package seed
