package dsl

// Declaration introduces a variable. Init is optional.
type Declaration struct {
	Var     Var
	Init    Expression
	Mutable bool
}

// AssignStmt assigns a value to a variable.
type AssignStmt struct {
	Var Expression
	X   Expression
}

// MapSetStmt puts the value into the map.
type MapSetStmt struct {
	Map   *MapVariable
	Key   Expression
	Value Expression
}

// ArraySetStmt puts the value into the array.
type ArraySetStmt struct {
	Array Expression
	Index Expression
	Value Expression
}

// ReturnStmt returns a value. Within lambdas this is the value of the lambda.
type ReturnStmt struct {
	X Expression
}

// ForEachStmt iterates over a collection.
type ForEachStmt struct {
	Var        Var
	Collection Expression
	Body       *Block
}

// ForStmt is a counted loop.
type ForStmt struct {
	Init  *Declaration
	Cond  Expression
	After Expression
	Body  *Block
}

// IfStmt is a conditional.
type IfStmt struct {
	Cond Expression
	Body *Block
}

// ElseIfStmt is an alternative conditional following an [IfStmt].
type ElseIfStmt struct {
	Cond Expression
	Body *Block
}

// ElseStmt is the last alternative following an [IfStmt].
type ElseStmt struct {
	Body *Block
}

// TryCatchStmt is an exception guarded region. Catch is nil until the
// handler is provided.
type TryCatchStmt struct {
	Body    *Block
	Catch   *Variable
	Handler *Block
}

// ScopeStmt is a nested block which limits the visibility of its declarations.
type ScopeStmt struct {
	Body *Block
}

func (*Declaration) isNode() {}
func (*Declaration) isStatement() {}
func (*AssignStmt) isNode() {}
func (*AssignStmt) isStatement() {}
func (*MapSetStmt) isNode() {}
func (*MapSetStmt) isStatement() {}
func (*ArraySetStmt) isNode() {}
func (*ArraySetStmt) isStatement() {}
func (*ReturnStmt) isNode() {}
func (*ReturnStmt) isStatement() {}
func (*ForEachStmt) isNode() {}
func (*ForEachStmt) isStatement() {}
func (*ForStmt) isNode() {}
func (*ForStmt) isStatement() {}
func (*IfStmt) isNode() {}
func (*IfStmt) isStatement() {}
func (*ElseIfStmt) isNode() {}
func (*ElseIfStmt) isStatement() {}
func (*ElseStmt) isNode() {}
func (*ElseStmt) isStatement() {}
func (*TryCatchStmt) isNode() {}
func (*TryCatchStmt) isStatement() {}
func (*ScopeStmt) isNode() {}
func (*ScopeStmt) isStatement() {}
