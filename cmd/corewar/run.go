package main

import (
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/bassosimone/corewar/internal/engine"
	"github.com/bassosimone/corewar/internal/memory"
)

func newRunCommand() *cobra.Command {
	var memorySize int
	var offset1, offset2 int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run <player1-binary> <player2-binary>",
		Short: "Run two compiled binaries against each other to completion",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if offset2 < 0 {
				offset2 = memorySize / 2
			}
			program1, err := readProgram(args[0])
			if err != nil {
				return fmt.Errorf("player 1: %w", err)
			}
			program2, err := readProgram(args[1])
			if err != nil {
				return fmt.Errorf("player 2: %w", err)
			}

			m, err := engine.New(memorySize, program1, offset1, program2, offset2)
			if err != nil {
				return err
			}

			turn := 0
			for m.Status() == engine.Running {
				if verbose {
					glog.Infof("turn %d: cohort1=%d cohort2=%d", turn, m.Cohort1Size(), m.Cohort2Size())
				}
				m.Step()
				turn++
			}
			fmt.Println(resultLine(m.Status()))
			return nil
		},
	}

	cmd.Flags().IntVar(&memorySize, "memory-size", memory.Size, "arena size in words")
	cmd.Flags().IntVar(&offset1, "offset1", engine.DefaultOffset1, "player 1 load offset")
	cmd.Flags().IntVar(&offset2, "offset2", -1, "player 2 load offset (defaults to memory-size/2)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-turn cohort sizes")

	return cmd
}

func resultLine(status engine.Status) string {
	switch status {
	case engine.Draw:
		return "draw"
	case engine.Player1Wins:
		return "player1-wins"
	case engine.Player2Wins:
		return "player2-wins"
	default:
		return status.String()
	}
}

func readProgram(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return loadBinary(f)
}
