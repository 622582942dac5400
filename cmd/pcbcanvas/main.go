package main

import "github.com/OpenTraceLab/pcbcanvas/cmd/pcbcanvas/cmd"

func main() {
	cmd.Execute()
}
