package main

import "github.com/vibast-solutions/ms-go-portfolio/cmd"

func main() {
	cmd.Execute()
}
