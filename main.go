package main

import (
	"os"
	"runtime/debug"

	"github.com/mezonai/blackball/cmd"
	"github.com/mezonai/blackball/logx"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			_ = logx.Errorf("BLACKBALL CRASHED: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
