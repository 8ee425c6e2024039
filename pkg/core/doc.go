// Package core provides a small, stable facade over piiredact's internal
// engine for programs that want to mask records without the CLI. It exposes
// a narrow API surface so callers do not import internal packages.
//
// Example:
//
//	res, err := core.ProcessJSON(`{"phone": "9876543210"}`, core.Options{})
//	if err != nil { /* malformed input */ }
//	fmt.Println(res.Data, res.Sensitive)
package core
