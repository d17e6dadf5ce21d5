package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "fritz2kicad",
	Short: "Convert Fritzing parts to KiCad footprints and symbols",
	Long: `fritz2kicad converts Fritzing part packages (.fzpz) into KiCad
footprint (.kicad_mod) and symbol library (.kicad_sym) files.

The PCB pad geometry is extracted from the part's SVG drawing and
auto-calibrated to millimeters from the pin pitch.

Examples:
  fritz2kicad convert part.fzpz mypart   # write mypart.kicad_mod + mypart.kicad_sym
  fritz2kicad info part.fzpz             # show descriptor contents
  fritz2kicad check mypart.kicad_mod     # verify generated output parses`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
