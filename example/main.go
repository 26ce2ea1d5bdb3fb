// FILE: lixenwraith/kvconf/example/main.go
package main

import (
	"fmt"
	"os"

	"github.com/lixenwraith/kvconf"
)

// validOptions declares the options this program accepts and their defaults.
var validOptions = []string{
	"my_max_length = 1024",
	"my_tag_name=", // empty by default
}

func run(configPath string) error {
	cfg := kvconf.New()
	defer cfg.Destroy()

	if err := cfg.LoadList(kvconf.ModeAdd, validOptions); err != nil {
		return err
	}

	if err := cfg.LoadFile(kvconf.ModeUpdate, configPath); err != nil {
		return err
	}

	maxLength, err := cfg.Int64("my_max_length")
	if err != nil {
		return err
	}

	tagName, err := cfg.String("my_tag_name")
	if err != nil {
		return err
	}

	fmt.Printf("my_max_length=%d, my_tag_name='%s'\n", maxLength, tagName)
	return nil
}

func main() {
	configPath := "my_config_file.txt"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	if err := run(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "example: %v\n", err)
		os.Exit(int(kvconf.CodeOf(err)))
	}
}
