package main

import "github.com/KaramelBytes/tempviz-cli/cmd"

func main() {
	cmd.Execute()
}
