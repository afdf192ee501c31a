package main

import "github.com/jcmexdev/storefront/internal/cmd"

func main() {
	cmd.Execute()
}
