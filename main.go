package main

import (
	"github.com/doxybind/doxybind/cmd"
)

func main() {
	cmd.Execute()
}
