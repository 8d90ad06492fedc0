// Package translate converts chapter text to a configured target language
// for display. Translation is best effort: on any failure the caller gets
// the original English text back.
package translate
