package main

import "github.com/naka-gawa/reposcore/cmd"

func main() {
	cmd.Execute()
}
