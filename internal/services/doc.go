// Package services holds shared helpers for external API clients: sentinel
// error markers with contextual wrapping, and context annotations that carry
// household, day, and run identity through batch processing.
package services
