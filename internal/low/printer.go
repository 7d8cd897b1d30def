package low

import (
	"fmt"
	"strings"
)

// Print renders a ProgramFragment as indented text.
func Print(program *ProgramFragment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "program {\n")
	fmt.Fprintf(&b, "  uninterpreted_sorts: %v\n", program.UninterpretedSorts)
	fmt.Fprintf(&b, "  variables:\n")
	for _, v := range program.Variables {
		fmt.Fprintf(&b, "    %s: %s\n", v.Name, v.Sort)
	}
	fmt.Fprintf(&b, "  functions: %v\n", program.Functions)
	fmt.Fprintf(&b, "  blocks:\n")
	for id, block := range program.BasicBlocks {
		fmt.Fprintf(&b, "    %d:\n", id)
		for _, stmt := range block.Statements {
			fmt.Fprintf(&b, "      %s\n", stmt)
		}
		fmt.Fprintf(&b, "      successors: %v\n", block.Successors)
	}
	fmt.Fprintf(&b, "}\n")
	return b.String()
}
