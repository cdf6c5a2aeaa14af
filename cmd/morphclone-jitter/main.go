// cmd/morphclone-jitter/main.go
package main

import (
	"morphclone/internal/appshell"
	"morphclone/internal/jitterapp"
)

func main() { appshell.Main(jitterapp.RunContext) }
