// cmd/morphclone/main.go
package main

import (
	"morphclone/internal/app"
	"morphclone/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
