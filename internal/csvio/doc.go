// Package csvio reads and writes chapter CSV files for interchange with
// spreadsheet tooling. SQLite remains the system of record; CSV is an
// import/export boundary only.
package csvio
