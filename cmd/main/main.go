package main

import "github.com/Another0Noob/mediadata/cmd"

func main() {
	cmd.Execute()
}
