package main

import (
	"github.com/RomiBareiro/iamprobe/cmd"
)

func main() {
	cmd.Execute()
}
