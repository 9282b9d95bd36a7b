package cnf

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const maxLineSize = 64 * 1024 * 1024

// ParseError reports a token that is not an integer literal.
type ParseError struct {
	Line  int // 1-based
	Text  string
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: invalid literal %q in %q: %v", e.Line, e.Token, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type ParseOptions struct {
	// StrictDIMACS makes 0 terminate the current clause, so a clause may span several lines
	// and a line may hold several clauses. When false every clause line is one clause and
	// zeros are dropped.
	StrictDIMACS bool
}

func ParseFile(fileName string, options ParseOptions) (Formula, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return Formula{}, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	return ParseWith(file, options)
}

func Parse(reader io.Reader) (Formula, error) {
	return ParseWith(reader, ParseOptions{})
}

func ParseWith(reader io.Reader, options ParseOptions) (Formula, error) {
	var formula Formula
	var pending Clause // strict mode only

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimSpace(scanner.Text())
		// Skip blanks, comments and the problem line
		if line == "" || line[0] == 'c' || line[0] == 'p' {
			continue
		}

		clause := make(Clause, 0)
		for _, token := range strings.Fields(line) {
			literal, err := strconv.ParseInt(token, 10, 64)
			if err == nil && literal == math.MinInt64 {
				err = strconv.ErrRange // its negation does not fit
			}
			if err != nil {
				return Formula{}, &ParseError{Line: lineNumber, Text: line, Token: token, Err: err}
			}
			formula.MaxVar = max(formula.MaxVar, uint64(Variable(literal)))

			if literal != 0 {
				clause = append(clause, literal)
			} else if options.StrictDIMACS {
				formula.Clauses = append(formula.Clauses, append(pending, clause...))
				pending, clause = nil, make(Clause, 0)
			}
		}

		if options.StrictDIMACS {
			pending = append(pending, clause...)
		} else {
			formula.Clauses = append(formula.Clauses, clause)
		}
	}

	if err := scanner.Err(); err != nil {
		return Formula{}, fmt.Errorf("error reading file: %w", err)
	}

	// Unterminated trailing clause
	if len(pending) > 0 {
		formula.Clauses = append(formula.Clauses, pending)
	}

	logrus.WithFields(logrus.Fields{
		"maxvar":  formula.MaxVar,
		"clauses": len(formula.Clauses),
	}).Info("parsed CNF formula")

	return formula, nil
}
