// configbridge converts configuration files between JSON, YAML and TOML.
package main

import "github.com/thirteen37/configbridge/internal/cmd"

func main() {
	cmd.Execute()
}
