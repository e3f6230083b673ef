package main

import "github.com/jcdickinson/seedoc/cmd"

func main() {
	cmd.Execute()
}
