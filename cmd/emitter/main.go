package main

import "github.com/nfrund/emitter/cmd/emitter/cmd"

func main() {
	cmd.Execute()
}
