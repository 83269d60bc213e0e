package main

import "github.com/KaramelBytes/pymaceuticals-cli/cmd"

func main() {
	cmd.Execute()
}
