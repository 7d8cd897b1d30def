package high

import "svirpti/internal/cfg"

// BasicBlockID indexes ProcedureDeclaration.BasicBlocks. Id 0 is the entry
// sentinel, id len(BasicBlocks)-1 is the exit sentinel.
type BasicBlockID int

// BasicBlock is a guarded, straight-line sequence of statements.
type BasicBlock struct {
	Label       LabelSymbol
	Guard       Expression
	Statements  []Statement
	Successors  []BasicBlockID
}

// ProcedureDeclaration owns the variables and basic blocks of one procedure.
type ProcedureDeclaration struct {
	Variables  []VariableDeclaration
	BasicBlocks []BasicBlock
}

// ProgramFragment is the top-level unit the lowering pass consumes.
type ProgramFragment struct {
	Sorts     []UninterpretedSortDeclaration
	Axioms    []AxiomDeclaration
	Functions []FunctionDeclaration
	Procedure ProcedureDeclaration
}

// cfgView adapts *ProcedureDeclaration to cfg.Graph.
type cfgView struct{ p *ProcedureDeclaration }

func (v cfgView) NumBlocks() int { return len(v.p.BasicBlocks) }
func (v cfgView) Successors(id int) []int {
	succs := v.p.BasicBlocks[id].Successors
	out := make([]int, len(succs))
	for i, s := range succs {
		out[i] = int(s)
	}
	return out
}

// EntryBlock and ExitBlock are the two sentinel ids every CFG carries.
func (p *ProcedureDeclaration) EntryBlock() BasicBlockID { return 0 }
func (p *ProcedureDeclaration) ExitBlock() BasicBlockID {
	return BasicBlockID(len(p.BasicBlocks) - 1)
}

// Validate panics unless the procedure's CFG satisfies the invariants from
// spec section 3.5. These are programmer errors: the macro/parser collaborator
// is expected to have already checked them.
func (p *ProcedureDeclaration) Validate() {
	cfg.Validate(cfgView{p})
}

// ComputePredecessors returns, indexed by BasicBlockID, the predecessors of
// each block (length len(BasicBlocks)+1, the extra slot reserved for
// ReverseWalk's virtual past-exit sink).
func (p *ProcedureDeclaration) ComputePredecessors() [][]BasicBlockID {
	raw := cfg.ComputePredecessors(cfgView{p})
	out := make([][]BasicBlockID, len(raw))
	for id, preds := range raw {
		converted := make([]BasicBlockID, len(preds))
		for i, pred := range preds {
			converted[i] = BasicBlockID(pred)
		}
		out[id] = converted
	}
	return out
}

// WalkEntry pairs a visited block id with the block itself.
type WalkEntry struct {
	ID    BasicBlockID
	Block *BasicBlock
}

// Walk returns (id, block) pairs in forward topological order: a block is
// visited only after all of its predecessors have been.
func (p *ProcedureDeclaration) Walk() []WalkEntry {
	order := cfg.Walk(cfgView{p})
	out := make([]WalkEntry, len(order))
	for i, id := range order {
		out[i] = WalkEntry{BasicBlockID(id), &p.BasicBlocks[id]}
	}
	return out
}

// ReverseWalk returns (id, block) pairs in reverse topological order: a block
// is visited only after all of its successors have been.
func (p *ProcedureDeclaration) ReverseWalk() []WalkEntry {
	raw := cfg.ComputePredecessors(cfgView{p})
	order := cfg.ReverseWalk(cfgView{p}, raw)
	out := make([]WalkEntry, len(order))
	for i, id := range order {
		out[i] = WalkEntry{BasicBlockID(id), &p.BasicBlocks[id]}
	}
	return out
}
