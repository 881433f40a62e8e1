package main

import (
	_ "github.com/Kirov7/kraglin/cmd/cli"
	"github.com/Kirov7/kraglin/cmd/root"
	_ "github.com/Kirov7/kraglin/cmd/standalone"
)

func main() {
	root.Execute()
}
