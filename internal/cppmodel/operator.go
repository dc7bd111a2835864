package cppmodel

import "strings"

// OperatorCategory is the fixed classification of a C++ operator token with
// respect to binding emission.
type OperatorCategory string

const (
	CategoryInplace     OperatorCategory = "inplace"
	CategoryComparison  OperatorCategory = "comparison"
	CategoryUnary       OperatorCategory = "unary"
	CategoryArray       OperatorCategory = "array"
	CategoryAccess      OperatorCategory = "access"
	CategoryOstream     OperatorCategory = "ostream"
	CategoryDereference OperatorCategory = "dereference"
	CategoryCrement     OperatorCategory = "crement"
	CategoryAssignment  OperatorCategory = "assignment"
	CategoryConversion  OperatorCategory = "conversion"
	// CategoryUnclassified marks any token outside the fixed table. Emitters
	// must surface it as a diagnostic, never drop it silently.
	CategoryUnclassified OperatorCategory = "unclassified"
)

// ClassifyOperator maps a function name of the form "operator<token>" to the
// token and its category. It is total: any input yields exactly one category.
func ClassifyOperator(name string) (string, OperatorCategory) {
	if !strings.HasPrefix(name, "operator") {
		return "", CategoryUnclassified
	}
	symbol := strings.TrimSpace(name[len("operator"):])
	switch symbol {
	case "+=", "-=", "*=", "/=", "%=", ">>=", "<<=", "&=", "^=", "|=":
		return symbol, CategoryInplace
	case "==", "!=", "<", ">", "<=", ">=":
		return symbol, CategoryComparison
	case "-", "+", "~", "!":
		return symbol, CategoryUnary
	case "[]":
		return symbol, CategoryArray
	case "()":
		return symbol, CategoryAccess
	case "<<":
		return symbol, CategoryOstream
	case "*", "->":
		return symbol, CategoryDereference
	case "++", "--":
		return symbol, CategoryCrement
	case "=":
		return symbol, CategoryAssignment
	case "bool":
		return symbol, CategoryConversion
	}
	return symbol, CategoryUnclassified
}
