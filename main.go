package main

import (
	"os"

	"github.com/baiyu/pjexam/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
