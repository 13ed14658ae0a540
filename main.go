package main

import "github.com/naka-gawa/lottery-sync/cmd"

func main() {
	cmd.Execute()
}
