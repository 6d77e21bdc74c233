package main

import "github.com/Andrepuel/conan-build/cmd"

func main() {
	cmd.Execute()
}
