// Package twelvelabs talks to the Twelve Labs video understanding API.
// The batch runner uploads home camera footage here, waits for indexing,
// and asks for chapter-style activity summaries.
package twelvelabs
