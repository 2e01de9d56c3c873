package main

import "github.com/notargets/surfaceforce/cmd"

func main() {
	cmd.Execute()
}
