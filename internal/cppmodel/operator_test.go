package cppmodel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyOperator(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		symbol   string
		category OperatorCategory
	}{
		{name: "plus equals", in: "operator+=", symbol: "+=", category: CategoryInplace},
		{name: "shift right equals", in: "operator>>=", symbol: ">>=", category: CategoryInplace},
		{name: "equality", in: "operator==", symbol: "==", category: CategoryComparison},
		{name: "less than", in: "operator<", symbol: "<", category: CategoryComparison},
		{name: "unary minus", in: "operator-", symbol: "-", category: CategoryUnary},
		{name: "logical not", in: "operator!", symbol: "!", category: CategoryUnary},
		{name: "subscript", in: "operator[]", symbol: "[]", category: CategoryArray},
		{name: "call", in: "operator()", symbol: "()", category: CategoryAccess},
		{name: "stream insertion", in: "operator<<", symbol: "<<", category: CategoryOstream},
		{name: "dereference", in: "operator*", symbol: "*", category: CategoryDereference},
		{name: "arrow", in: "operator->", symbol: "->", category: CategoryDereference},
		{name: "increment", in: "operator++", symbol: "++", category: CategoryCrement},
		{name: "assignment", in: "operator=", symbol: "=", category: CategoryAssignment},
		{name: "bool conversion", in: "operator bool", symbol: "bool", category: CategoryConversion},
		{name: "spaceship is unclassified", in: "operator<=>", symbol: "<=>", category: CategoryUnclassified},
		{name: "new is unclassified", in: "operator new", symbol: "new", category: CategoryUnclassified},
		{name: "not an operator", in: "size", symbol: "", category: CategoryUnclassified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			symbol, category := ClassifyOperator(tt.in)
			require.Equal(t, tt.symbol, symbol)
			require.Equal(t, tt.category, category)
		})
	}
}

func TestClassifyMember(t *testing.T) {
	tests := []struct {
		name      string
		className string
		member    string
		want      MemberRole
	}{
		{name: "plain method", className: "Tree", member: "size", want: RoleMethod},
		{name: "constructor", className: "Tree", member: "Tree", want: RoleConstructor},
		{name: "destructor", className: "Tree", member: "~Tree", want: RoleDestructor},
		{name: "operator", className: "Tree", member: "operator==", want: RoleOperator},
		{name: "class named like an operator", className: "operatorTable", member: "operatorTable", want: RoleAmbiguous},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ClassifyMember(tt.className, tt.member))
		})
	}
}
