package high

import (
	"fmt"
	"strings"
)

// Print renders a ProgramFragment as indented text, in the style the teacher
// corpus uses for debugging intermediate representations.
func Print(program *ProgramFragment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "program {\n")
	fmt.Fprintf(&b, "  sorts: %v\n", program.Sorts)
	fmt.Fprintf(&b, "  functions: %v\n", program.Functions)
	fmt.Fprintf(&b, "  procedure:\n")
	fmt.Fprintf(&b, "    variables:\n")
	for _, v := range program.Procedure.Variables {
		fmt.Fprintf(&b, "      %s: %s\n", v.Name, v.Sort)
	}
	fmt.Fprintf(&b, "    blocks:\n")
	for id, block := range program.Procedure.BasicBlocks {
		fmt.Fprintf(&b, "      [%d] %s:\n", id, block.Label)
		fmt.Fprintf(&b, "        guard: %s\n", block.Guard)
		for _, stmt := range block.Statements {
			fmt.Fprintf(&b, "        %s\n", stmt)
		}
		fmt.Fprintf(&b, "        successors: %v\n", block.Successors)
	}
	fmt.Fprintf(&b, "}\n")
	return b.String()
}
