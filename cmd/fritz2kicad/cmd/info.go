package cmd

import (
	"fmt"

	"github.com/padstack/fritz2kicad/pkg/fzp"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <part.fzpz>",
	Short: "Show the contents of a Fritzing part package",
	Long: `Reads the package descriptor and prints the component name, the PCB
drawing reference and the connector table without converting anything.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	ar, err := fzp.OpenArchive(args[0])
	if err != nil {
		return err
	}
	descriptor, err := ar.Descriptor()
	if err != nil {
		return err
	}
	part, err := fzp.ParsePart(descriptor)
	if err != nil {
		return err
	}

	fmt.Printf("Component: %s\n", part.Name)
	fmt.Printf("PCB image: %s\n", orNone(part.PCBImage))
	if entry, err := fzp.ResolveDrawing(ar, part.PCBImage); err == nil {
		fmt.Printf("Resolved:  %s\n", entry)
	} else {
		fmt.Printf("Resolved:  (no PCB drawing in archive)\n")
	}

	fmt.Printf("Connectors: %d\n", len(part.Connectors))
	fmt.Printf("%-14s %-6s %-16s %-10s %s\n", "ID", "Pin", "Name", "Mount", "SVG ref")
	for _, c := range part.Connectors {
		mount := "smd"
		if c.ThroughHole {
			mount = "thru-hole"
		}
		fmt.Printf("%-14s %-6s %-16s %-10s %s\n", c.ID, c.Pin, c.Name, mount, orNone(c.SVGID))
	}

	if verbose {
		fmt.Printf("\nArchive entries:\n")
		for _, name := range ar.Entries() {
			fmt.Printf("  %s\n", name)
		}
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
