package main

import (
	"github.com/avencia/chatframe/cmd"
)

func main() {
	cmd.Execute()
}
