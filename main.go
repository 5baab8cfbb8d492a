package main

import (
	"github.com/emberline/storefront/cmd"
)

func main() {
	cmd.Start()
}
