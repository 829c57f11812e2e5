package object

import (
	"strings"
	"sync"
	"unicode"
)

type Symbol struct {
	Name string
}

func (s *Symbol) Type() ObjectType { return SYMBOL_OBJ }
func (s *Symbol) Inspect() string {
	if isSymbolIdent(s.Name) {
		return s.Name
	}
	return "|" + escapeSymbolLabel(s.Name) + "|"
}

// SymbolTable interns symbols so that each name maps to exactly one *Symbol.
type SymbolTable struct {
	mu      sync.Mutex
	symbols map[string]*Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: map[string]*Symbol{}}
}

func (t *SymbolTable) Intern(name string) *Symbol {
	t.mu.Lock()
	defer t.mu.Unlock()

	if sym, ok := t.symbols[name]; ok {
		return sym
	}
	sym := &Symbol{Name: name}
	t.symbols[name] = sym
	return sym
}

var defaultSymbols = NewSymbolTable()

// Intern uses the process-wide symbol table.
func Intern(name string) *Symbol {
	return defaultSymbols.Intern(name)
}

func isSymbolIdent(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if unicode.IsSpace(r) || r == '(' || r == ')' || r == '"' || r == ';' || r == '|' || r == '\'' {
			return false
		}
	}
	return true
}

func escapeSymbolLabel(label string) string {
	var out strings.Builder
	for _, r := range label {
		switch r {
		case '\\':
			out.WriteString(`\\`)
		case '|':
			out.WriteString(`\|`)
		case '\n':
			out.WriteString(`\n`)
		case '\r':
			out.WriteString(`\r`)
		case '\t':
			out.WriteString(`\t`)
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
