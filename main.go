package main

import "github.com/ridoystarlord/syncproc/cmd"

func main() {
	cmd.Execute()
}
