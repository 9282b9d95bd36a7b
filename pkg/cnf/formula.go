package cnf

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

type Clause []int64

type Formula struct {
	MaxVar  uint64
	Clauses []Clause
}

func (f Formula) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", f.MaxVar, len(f.Clauses))
	for _, clause := range f.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

// Variable returns the variable id of a literal
func Variable(literal int64) int64 {
	if literal < 0 {
		return -literal
	}
	return literal
}

// GenerateFormula builds a random formula over variables > 0 variables. Every clause holds
// at least one literal.
func GenerateFormula(variables uint64, clauses int, src rand.Source) Formula {
	random := rand.New(src)
	formula := Formula{
		Clauses: make([]Clause, clauses),
	}

	for i := range clauses {
		formula.Clauses[i] = make(Clause, 0, variables)
		for j := range variables {
			if random.Float32() < 0.5 {
				var sign int64 = 1
				if random.Float32() < 0.5 {
					sign = -1
				}
				formula.Clauses[i] = append(formula.Clauses[i], sign*(1+int64(j)))
			}
		}

		if len(formula.Clauses[i]) == 0 {
			var sign int64 = 1
			if random.Float32() < 0.5 {
				sign = -1
			}
			formula.Clauses[i] = append(formula.Clauses[i], sign*(1+random.Int64N(int64(variables))))
		}

		for _, literal := range formula.Clauses[i] {
			formula.MaxVar = max(formula.MaxVar, uint64(Variable(literal)))
		}
	}

	return formula
}
