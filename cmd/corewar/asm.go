package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bassosimone/corewar/internal/asm"
)

func newAsmCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "asm <source-file>",
		Short: "Assemble a source file into a compiled binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer src.Close()

			words, err := asm.Assemble(src)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return saveBinary(out, words)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (defaults to stdout)")
	return cmd
}
