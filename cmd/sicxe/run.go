package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ezrec/sicxe/cpu"
	"github.com/ezrec/sicxe/machine"
	"github.com/ezrec/sicxe/object"
)

var runHex bool
var runSteps int
var runLegacy bool

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run programFile",
	Short: "Load and execute a SIC/XE program",
	Long: `Run loads a program at address 006000 and executes it until it runs
past its last byte, faults, or reaches the step limit. The program is an
object file if it parses as H/T/E records, a raw hex program with --hex,
and assembly source otherwise. The final machine state is printed.
`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		text := readInput(name)

		mach := machine.NewMachine()
		mach.Verbose = verbose
		mach.LegacyJumps = runLegacy

		var err error
		switch {
		case runHex:
			err = mach.LoadHex(text)
		case isObject(text):
			err = mach.LoadObject(text)
		default:
			err = mach.LoadProgram(assemble(name, text))
		}
		if err != nil {
			log.Fatalf("%v: %v", name, err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		steps, err := mach.Run(ctx, runSteps)
		fmt.Print(mach.String())

		switch {
		case err == nil:
			log.Printf("%v: stopped after %d steps", name, steps)
		case errors.Is(err, cpu.ErrInvalidProgramCounter) && mach.Halted():
			if verbose {
				log.Printf("%v: halted after %d steps", name, steps)
			}
		default:
			stop()
			log.Fatalf("%v: %v", name, err)
		}
	},
}

// isObject returns true if text is a valid object program.
func isObject(text string) bool {
	_, err := object.Parse(text)
	return err == nil
}

func init() {
	runCmd.Flags().BoolVarP(&runHex, "hex", "x", false, "Program is raw hex")
	runCmd.Flags().IntVarP(&runSteps, "steps", "n", 0, "Step limit, 0 for none")
	runCmd.Flags().BoolVar(&runLegacy, "legacy-jump", false, "Jumps load the operand value and still advance PC")
	rootCmd.AddCommand(runCmd)
}
