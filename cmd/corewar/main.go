// Command corewar is the Core War CLI: it assembles source programs and
// runs two compiled binaries against each other in the shared-memory
// engine (spec.md §6). Its subcommand layout follows
// oisee-z80-optimizer/cmd/z80opt/main.go's cobra root-plus-subcommands
// shape.
package main

import (
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

func main() {
	defer glog.Flush()

	root := &cobra.Command{
		Use:   "corewar",
		Short: "A two-player Core War virtual machine",
	}
	root.AddCommand(newRunCommand())
	root.AddCommand(newAsmCommand())

	if err := root.Execute(); err != nil {
		glog.Errorf("corewar: %v", err)
		os.Exit(1)
	}
}
