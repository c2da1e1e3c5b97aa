// cmd/vkbridge/main.go
package main

import (
	"vkbridge/internal/app"
	"vkbridge/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
