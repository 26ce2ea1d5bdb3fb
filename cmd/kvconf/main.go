// kvconf checks, queries and exports line-oriented key=value configuration files.
package main

import (
	"fmt"
	"os"

	"github.com/lixenwraith/kvconf"
)

func main() {
	if err := NewRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(kvconf.CodeOf(err)))
	}
}
