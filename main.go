package main

import "github.com/alexiusacademia/gorcd/cmd"

func main() {
	cmd.Execute()
}
