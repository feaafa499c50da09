package main

import "github.com/KaramelBytes/biomark-cli/cmd"

func main() {
	cmd.Execute()
}
