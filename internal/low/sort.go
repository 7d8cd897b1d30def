package low

// Sort is the low-tier counterpart of high.Type.
type Sort interface {
	isSort()
	String() string
}

type (
	BoolSort struct{}
	IntSort  struct{}
	RealSort struct{}
	// UninterpretedSort names a domain declared on the ProgramFragment.
	UninterpretedSort struct {
		Name UninterpretedSortSymbol
	}
)

func (BoolSort) isSort() {}
func (IntSort) isSort()  {}
func (RealSort) isSort() {}
func (UninterpretedSort) isSort() {}

func (BoolSort) String() string           { return "Bool" }
func (IntSort) String() string            { return "Int" }
func (RealSort) String() string           { return "Real" }
func (s UninterpretedSort) String() string { return string(s.Name) }
