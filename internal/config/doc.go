// Package config loads, normalizes, and validates homesight configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TWELVELABS_API_KEY. The Config type centralizes every knob the CLI needs,
// from API credentials to the event merge gap threshold.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
