// Command mentor analyzes startup ideas with a local Ollama model.
package main

import "github.com/diogo/startupmentor/internal/commands"

func main() {
	commands.Execute()
}
