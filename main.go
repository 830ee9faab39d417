package main

import "github.com/HeyElsa/elsa-openclaw/cmd"

func main() {
	cmd.Execute()
}
