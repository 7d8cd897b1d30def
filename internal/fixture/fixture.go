// Package fixture decodes YAML program fragments into high.ProgramFragment,
// the input format cmd/svirpti and the test suite use to describe a
// procedure without hand-building the high-tier IR literally.
package fixture

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"svirpti/internal/high"
)

// Document is the top-level YAML shape of one program fragment fixture.
//
//	sorts: [Account]
//	procedure:
//	  variables: [{name: x, sort: Int}]
//	  blocks:
//	    - guard: {bool: true}
//	      statements:
//	        - assign: {var: x, expr: {int: 5}}
//	      successors: [1]
type Document struct {
	Sorts     []string       `yaml:"sorts"`
	Functions []functionDecl `yaml:"functions"`
	Axioms    []axiomDecl    `yaml:"axioms"`
	Procedure procedureDoc   `yaml:"procedure"`
}

type functionDecl struct {
	Name   string   `yaml:"name"`
	Params []string `yaml:"params"`
	Return string   `yaml:"return"`
}

type axiomDecl struct {
	Name string   `yaml:"name"`
	Expr exprNode `yaml:"expr"`
}

type variableDecl struct {
	Name string `yaml:"name"`
	Sort string `yaml:"sort"`
}

type procedureDoc struct {
	Variables []variableDecl `yaml:"variables"`
	Blocks    []blockDoc     `yaml:"blocks"`
}

type blockDoc struct {
	Label      string          `yaml:"label"`
	Guard      *exprNode       `yaml:"guard"`
	Statements []statementNode `yaml:"statements"`
	Successors []int           `yaml:"successors"`
}

// Parse decodes one YAML program fragment document.
func Parse(data []byte) (*high.ProgramFragment, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	return doc.toProgramFragment()
}

func parseSort(name string) (high.Type, error) {
	switch name {
	case "", "Bool":
		return high.BoolType{}, nil
	case "Int":
		return high.IntType{}, nil
	case "Real":
		return high.RealType{}, nil
	default:
		return high.DomainType{Name: high.UninterpretedSortSymbol(name)}, nil
	}
}

func (v variableDecl) toDeclaration() (high.VariableDeclaration, error) {
	sort, err := parseSort(v.Sort)
	if err != nil {
		return high.VariableDeclaration{}, err
	}
	return high.VariableDeclaration{Name: high.VariableSymbol(v.Name), Sort: sort}, nil
}

func (d Document) toProgramFragment() (*high.ProgramFragment, error) {
	program := &high.ProgramFragment{}

	for _, s := range d.Sorts {
		program.Sorts = append(program.Sorts, high.UninterpretedSortDeclaration{Name: high.UninterpretedSortSymbol(s)})
	}

	for _, f := range d.Functions {
		params := make([]high.Type, len(f.Params))
		for i, p := range f.Params {
			sort, err := parseSort(p)
			if err != nil {
				return nil, err
			}
			params[i] = sort
		}
		ret, err := parseSort(f.Return)
		if err != nil {
			return nil, err
		}
		program.Functions = append(program.Functions, high.FunctionDeclaration{
			Name: high.FunctionSymbol(f.Name), Params: params, ReturnSort: ret,
		})
	}

	for _, a := range d.Axioms {
		expr, err := a.Expr.toExpression()
		if err != nil {
			return nil, err
		}
		program.Axioms = append(program.Axioms, high.AxiomDeclaration{Name: high.AxiomNameSymbol(a.Name), Expr: expr})
	}

	for _, v := range d.Procedure.Variables {
		decl, err := v.toDeclaration()
		if err != nil {
			return nil, err
		}
		program.Procedure.Variables = append(program.Procedure.Variables, decl)
	}

	for i, b := range d.Procedure.Blocks {
		block, err := b.toBasicBlock()
		if err != nil {
			return nil, fmt.Errorf("fixture: block %d: %w", i, err)
		}
		program.Procedure.BasicBlocks = append(program.Procedure.BasicBlocks, block)
	}

	return program, nil
}

func (b blockDoc) toBasicBlock() (high.BasicBlock, error) {
	guard := high.Expression(high.BoolConst(true))
	if b.Guard != nil {
		g, err := b.Guard.toExpression()
		if err != nil {
			return high.BasicBlock{}, err
		}
		guard = g
	}

	statements := make([]high.Statement, len(b.Statements))
	for i, s := range b.Statements {
		stmt, err := s.toStatement()
		if err != nil {
			return high.BasicBlock{}, fmt.Errorf("statement %d: %w", i, err)
		}
		statements[i] = stmt
	}

	successors := make([]high.BasicBlockID, len(b.Successors))
	for i, s := range b.Successors {
		successors[i] = high.BasicBlockID(s)
	}

	return high.BasicBlock{
		Label:      high.LabelSymbol(b.Label),
		Guard:      guard,
		Statements: statements,
		Successors: successors,
	}, nil
}
