package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/ezrec/sicxe/macro"
)

var macroOutput string
var macroDepth int

// macroCmd represents the macro command
var macroCmd = &cobra.Command{
	Use:   "macro sourceFile",
	Short: "Expand SIC/XE macros",
	Long: `Macro expands every macro call of the source file, and removes the
macro definitions. Use "-" to read standard input.
`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		expanded := expand(args[0], readInput(args[0]))
		writeOutput(macroOutput, expanded)
	},
}

// expand runs the macro processor, exiting on error.
func expand(name string, source string) string {
	proc := &macro.Processor{
		Verbose:  verbose,
		MaxDepth: macroDepth,
	}

	expanded, err := proc.Process(source)
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}

	return expanded
}

func init() {
	macroCmd.Flags().StringVarP(&macroOutput, "output", "o", "-", "Expanded source output")
	rootCmd.PersistentFlags().IntVar(&macroDepth, "max-depth", macro.MAX_DEPTH, "Macro expansion depth limit")
	rootCmd.AddCommand(macroCmd)
}
