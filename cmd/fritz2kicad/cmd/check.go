package cmd

import (
	"fmt"
	"os"

	"github.com/padstack/fritz2kicad/pkg/kicad/sexp"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Verify a generated KiCad file parses",
	Long: `Parses a .kicad_mod or .kicad_sym file back as S-expressions and
reports its pad or pin counts. Useful as a quick sanity check on
converted output before importing into KiCad.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	nodes, err := sexp.Parse(file)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	if len(nodes) == 0 {
		return fmt.Errorf("no S-expressions in file")
	}

	root, ok := nodes[0].(*sexp.List)
	if !ok {
		return fmt.Errorf("top-level expression is not a list")
	}

	switch root.Key() {
	case "footprint":
		name, _ := root.Str(1)
		pads := sexp.FindAll(root, "pad")
		fmt.Printf("footprint %q: %d pads\n", name, len(pads))
		for _, pad := range pads {
			number, _ := pad.Str(1)
			padType, _ := pad.Str(2)
			shape, _ := pad.Str(3)
			fmt.Printf("  pad %-4s %-9s %s\n", number, padType, shape)
		}

	case "kicad_symbol_lib":
		symbols := sexp.FindAll(root, "symbol")
		for _, sym := range symbols {
			name, _ := sym.Str(1)
			pins := sexp.FindAllDeep(sym, "pin")
			fmt.Printf("symbol %q: %d pins\n", name, len(pins))
		}

	default:
		return fmt.Errorf("unrecognized document type %q", root.Key())
	}
	return nil
}
