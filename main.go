package main

import "github.com/vlavrik/flespi-gateway/cmd"

func main() {
	cmd.Execute()
}
