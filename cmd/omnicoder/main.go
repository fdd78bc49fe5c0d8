package main

import (
	"omnicoder/internal/cmd"
)

func main() {
	cmd.Execute()
}
