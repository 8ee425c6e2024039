// Package ctxparse turns the loosely formatted JSON found in data cells into
// an ordered yaml.Node tree, walks its leaves and writes it back as JSON.
package ctxparse
