package main

import (
	"os"

	"github.com/aurceive/vtm-dice-mapping/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
