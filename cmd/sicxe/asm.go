package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/ezrec/sicxe/asm"
)

var asmOutput string
var asmListing string

// asmCmd represents the asm command
var asmCmd = &cobra.Command{
	Use:   "asm sourceFile",
	Short: "Assemble SIC/XE source into object records",
	Long: `Asm expands the macros of the source file, then assembles it in two
passes into H/T/E object records. Use "-" to read standard input.
`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		prog := assemble(args[0], readInput(args[0]))

		writeOutput(asmOutput, prog.Object())
		if len(asmListing) != 0 {
			writeOutput(asmListing, prog.Listing())
		}
	},
}

// assemble expands and assembles source, exiting on error.
func assemble(name string, source string) *asm.Program {
	as := &asm.Assembler{Verbose: verbose}

	prog, err := as.Assemble(expand(name, source))
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}

	return prog
}

func init() {
	asmCmd.Flags().StringVarP(&asmOutput, "output", "o", "-", "Object record output")
	asmCmd.Flags().StringVarP(&asmListing, "listing", "l", "", "Listing output")
	rootCmd.AddCommand(asmCmd)
}
