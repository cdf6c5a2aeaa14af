// Package writers owns the writer goroutines that drain batch outcome rows
// to an output stream in a registered format (text, json, jsonl).
package writers
