// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command sicxe is the SIC/XE macro processor, assembler and machine.
package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sicxe",
	Short: "SIC/XE macro processor, assembler and machine",
	Long: `Sicxe processes SIC/XE assembly source.

The macro command expands macro definitions and calls. The asm command
expands macros and assembles the result into H/T/E object records. The
run command loads an object file, a raw hex program or assembly source
at address 006000 and executes it.
`,
}

func init() {
	log.SetFlags(0)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")
}

// readInput reads a named file, or standard input for "-".
func readInput(name string) string {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}
	return string(data)
}

// writeOutput writes text to a named file, or standard output for "-".
func writeOutput(name string, text string) {
	var err error
	if name == "-" {
		_, err = io.WriteString(os.Stdout, text)
	} else {
		err = os.WriteFile(name, []byte(text), 0o644)
	}
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
