package main

import "github.com/guimove/placer/cmd"

func main() {
	cmd.Execute()
}
