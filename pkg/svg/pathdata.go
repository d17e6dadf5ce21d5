package svg

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// pathLexer tokenizes SVG path data ("d" attribute) per the SVG 1.1
// grammar: single-letter commands followed by number runs, with
// whitespace and commas as interchangeable separators.
var pathLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Command", Pattern: `[MmLlHhVvCcSsQqTtAaZz]`},
	{Name: "Number", Pattern: `[-+]?(\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Sep", Pattern: `[,\s]+`},
})

type pathData struct {
	Commands []*pathCommand `parser:"@@*"`
}

type pathCommand struct {
	Op   string    `parser:"@Command"`
	Args []float64 `parser:"@Number*"`
}

var pathParser = participle.MustBuild[pathData](
	participle.Lexer(pathLexer),
	participle.Elide("Sep"),
)

// pathGeometry is the evaluated form of a path: absolute on-path
// anchor points in drawing order, plus off-path curve control points
// that only contribute to the bounding box.
type pathGeometry struct {
	vertices [][2]float64
	controls [][2]float64
}

// argsPerSegment gives the argument count of one segment of each
// command; commands repeat implicitly when more arguments follow.
var argsPerSegment = map[byte]int{
	'M': 2, 'L': 2, 'T': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'A': 7, 'Z': 0,
}

// parsePathData parses and evaluates an SVG path description.
func parsePathData(d string) (*pathGeometry, error) {
	parsed, err := pathParser.ParseString("", d)
	if err != nil {
		return nil, fmt.Errorf("malformed path data: %w", err)
	}

	geo := &pathGeometry{}
	var cur, start [2]float64

	for _, cmd := range parsed.Commands {
		if len(cmd.Op) != 1 {
			return nil, fmt.Errorf("malformed path command %q", cmd.Op)
		}
		op := cmd.Op[0]
		upper := op
		relative := op >= 'a' && op <= 'z'
		if relative {
			upper = op - 'a' + 'A'
		}

		segArgs, ok := argsPerSegment[upper]
		if !ok {
			return nil, fmt.Errorf("unknown path command %q", cmd.Op)
		}

		if upper == 'Z' {
			if len(cmd.Args) != 0 {
				return nil, fmt.Errorf("close command takes no arguments")
			}
			cur = start
			geo.vertices = append(geo.vertices, cur)
			continue
		}

		if len(cmd.Args) == 0 || len(cmd.Args)%segArgs != 0 {
			return nil, fmt.Errorf("command %q expects multiples of %d arguments, got %d",
				cmd.Op, segArgs, len(cmd.Args))
		}

		for seg := 0; seg < len(cmd.Args); seg += segArgs {
			args := cmd.Args[seg : seg+segArgs]
			segOp := upper
			// Extra coordinate pairs after a moveto are implicit
			// linetos in the same coordinate mode.
			if upper == 'M' && seg > 0 {
				segOp = 'L'
			}

			abs := func(x, y float64) [2]float64 {
				if relative {
					return [2]float64{cur[0] + x, cur[1] + y}
				}
				return [2]float64{x, y}
			}

			switch segOp {
			case 'M':
				cur = abs(args[0], args[1])
				start = cur
			case 'L', 'T':
				cur = abs(args[0], args[1])
			case 'H':
				if relative {
					cur[0] += args[0]
				} else {
					cur[0] = args[0]
				}
			case 'V':
				if relative {
					cur[1] += args[0]
				} else {
					cur[1] = args[0]
				}
			case 'C':
				geo.controls = append(geo.controls, abs(args[0], args[1]), abs(args[2], args[3]))
				cur = abs(args[4], args[5])
			case 'S', 'Q':
				geo.controls = append(geo.controls, abs(args[0], args[1]))
				cur = abs(args[2], args[3])
			case 'A':
				// Endpoint only; the swept extent is approximated by
				// the chord, which is adequate for pad-sized arcs.
				cur = abs(args[5], args[6])
			}
			geo.vertices = append(geo.vertices, cur)
		}
	}

	if len(geo.vertices) == 0 {
		return nil, fmt.Errorf("path has no drawable segments")
	}
	return geo, nil
}
