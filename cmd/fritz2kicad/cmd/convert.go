package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/padstack/fritz2kicad/pkg/convert"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <part.fzpz> <output_base>",
	Short: "Convert a Fritzing part package to KiCad files",
	Long: `Converts a .fzpz package into <output_base>.kicad_mod and
<output_base>.kicad_sym.

When the package carries no usable PCB drawing, only the symbol
library is written.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	result, err := convert.Run(convert.Options{
		Input:      args[0],
		OutputBase: args[1],
		Logger:     log.New(os.Stderr, "", 0),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Converted %q (%d pins)\n", result.Name, result.Pins)
	if result.FootprintPath != "" {
		fmt.Printf("  footprint: %s (scale %.6f)\n", result.FootprintPath, result.Scale)
		if !result.Calibrated {
			fmt.Printf("  note: pitch calibration fell back to 1 mil per drawing unit\n")
		}
	} else {
		fmt.Printf("  footprint: skipped (no usable PCB drawing)\n")
	}
	fmt.Printf("  symbol:    %s\n", result.SymbolPath)
	return nil
}
