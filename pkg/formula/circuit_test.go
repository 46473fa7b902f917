package formula

import (
	"errors"
	"testing"

	"github.com/matzehuels/robdd/pkg/bdd"
)

var formulas = []struct {
	name  string
	src   string
	order []string
}{
	{"mixed", "(a and not c) or (b ^ d)", []string{"a", "c", "b", "d"}},
	{"implication chain", "a -> b -> c <-> d", []string{"a", "b", "c", "d"}},
	{"constants", "a & true | false ^ b", []string{"a", "b"}},
	{"unused input", "a", []string{"a", "b", "c"}},
	{"comparator", "(x2 and not y2) or ((x2 <-> y2) and x1 and not y1)", []string{"x2", "y2", "x1", "y1"}},
}

func TestCircuitMatchesInterpreter(t *testing.T) {
	for _, tt := range formulas {
		t.Run(tt.name, func(t *testing.T) {
			e := MustParse(tt.src)
			ct, err := Compile(e, tt.order)
			if err != nil {
				t.Fatalf("Compile() error: %v", err)
			}
			in := NewInterpreter(e)

			for bits := 0; bits < 1<<len(tt.order); bits++ {
				values := make(map[string]bool)
				for i, name := range tt.order {
					values[name] = bits&(1<<i) != 0
				}
				a := bdd.NewAssignment(tt.order, values)

				want, err := in.Eval(a)
				if err != nil {
					t.Fatal(err)
				}
				got, err := ct.Eval(a)
				if err != nil {
					t.Fatal(err)
				}
				if got != want {
					t.Errorf("circuit(%v) = %v, interpreter = %v", values, got, want)
				}
			}
		})
	}
}

func TestCompileUnknownVariable(t *testing.T) {
	_, err := Compile(MustParse("a and z"), []string{"a"})

	var uv *UndefinedVariableError
	if !errors.As(err, &uv) || uv.Name != "z" {
		t.Errorf("Compile() error = %v, want undefined z", err)
	}
}

func TestCompileRejectsBadOrder(t *testing.T) {
	if _, err := Compile(MustParse("a"), []string{"a", "a"}); err == nil {
		t.Error("Compile() accepted a duplicate variable")
	}
}

func TestInterpreterFailsBuild(t *testing.T) {
	// The order omits c, so the oracle cannot evaluate the formula.
	_, err := bdd.NewBuilder().Build(NewInterpreter(MustParse("a or c")), []string{"a", "b"})

	var oe *bdd.OracleError
	if !errors.As(err, &oe) {
		t.Fatalf("Build() error = %v, want *bdd.OracleError", err)
	}
	var uv *UndefinedVariableError
	if !errors.As(err, &uv) || uv.Name != "c" {
		t.Errorf("Build() error = %v, want undefined c", err)
	}
}

func TestBuildFromFormulas(t *testing.T) {
	tests := []struct {
		src       string
		order     []string
		wantNodes int
	}{
		{"(a and not c) or (b ^ d)", []string{"a", "c", "b", "d"}, 7},
		{"a ^ b ^ c ^ d ^ e", []string{"a", "c", "b", "d", "e"}, 11},
		{
			"(x3 & !y3) | ((x3 <-> y3) & ((x2 & !y2) | ((x2 <-> y2) & x1 & !y1)))",
			[]string{"x3", "y3", "x2", "y2", "x1", "y1"},
			10,
		},
		{"a and true", []string{"a"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e := MustParse(tt.src)
			ct, err := Compile(e, tt.order)
			if err != nil {
				t.Fatal(err)
			}
			fromCircuit, err := bdd.NewBuilder().Build(ct, tt.order)
			if err != nil {
				t.Fatal(err)
			}
			fromTree, err := bdd.NewBuilder().Build(NewInterpreter(e), tt.order)
			if err != nil {
				t.Fatal(err)
			}

			if got := fromCircuit.NodeCount(); got != tt.wantNodes {
				t.Errorf("NodeCount() = %d, want %d", got, tt.wantNodes)
			}
			if !fromCircuit.Isomorphic(fromTree) {
				t.Error("circuit and interpreter oracles built different diagrams")
			}
		})
	}
}
