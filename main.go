package main

import "github.com/theirongolddev/hormiga/cmd"

func main() {
	cmd.Execute()
}
