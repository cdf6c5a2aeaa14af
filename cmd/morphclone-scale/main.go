// cmd/morphclone-scale/main.go
package main

import (
	"morphclone/internal/appshell"
	"morphclone/internal/scaleapp"
)

func main() { appshell.Main(scaleapp.RunContext) }
