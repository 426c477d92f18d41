package main

import "time"

// http and network timeouts
const (
	downloadHTTPTimeout = 10 * time.Minute
)

// stats table rendering
const (
	statsTextColumnWidth = 40
)
