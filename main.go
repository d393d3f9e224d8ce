package main

import "github.com/ridoystarlord/ordermigrate/cmd"

func main() {
	cmd.Execute()
}
