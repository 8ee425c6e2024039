// Package audit keeps an append-only JSONL log of scan runs.
package audit
