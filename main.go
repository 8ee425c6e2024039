package main

import "github.com/redactyl/piiredact/cmd/piiredact"

func main() { piiredact.Execute() }
