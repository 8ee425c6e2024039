// Package tabular reads input rows from CSV and writes redacted rows back.
package tabular
