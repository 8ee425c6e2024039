// Package report renders run summaries and listings as terminal tables,
// markdown or JSON.
package report
