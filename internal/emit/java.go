package emit

import (
	"fmt"
	"strings"

	"github.com/sirkon/streamtrace/internal/dsl"
	"github.com/sirkon/streamtrace/internal/gentype"
)

// javaRenderer renders nodes in explicit statements style: statements are
// terminated with semicolons, maps are accessed with put/get calls.
type javaRenderer struct{}

func (javaRenderer) Types() *gentype.Dialect {
	return gentype.Java
}

func (r javaRenderer) Render(n dsl.Node) string {
	switch x := n.(type) {
	case *dsl.Block:
		return r.block(x, 0)
	case dsl.Expression:
		return r.expr(x, 0)
	case dsl.Statement:
		return r.statement(x, 0)
	default:
		panic(fmt.Errorf("java: unsupported node %T", n))
	}
}

func (r javaRenderer) block(b *dsl.Block, depth int) string {
	lines := make([]string, 0, b.Len())
	for _, s := range b.Statements() {
		lines = append(lines, r.statement(s, depth))
	}

	return joinLines(lines)
}

func (r javaRenderer) statement(s dsl.Statement, depth int) string {
	ind := indent(depth)
	switch x := s.(type) {
	case *dsl.Block:
		return r.block(x, depth)
	case *dsl.Declaration:
		return ind + r.declaration(x, depth) + ";"
	case *dsl.AssignStmt:
		return ind + r.assign(x, depth) + ";"
	case *dsl.MapSetStmt:
		return ind + r.mapSet(x, depth) + ";"
	case *dsl.ArraySetStmt:
		return ind + r.arraySet(x, depth) + ";"
	case *dsl.ReturnStmt:
		return ind + "return " + r.expr(x.X, depth) + ";"
	case *dsl.ForEachStmt:
		v := x.Var.Base()
		return ind + fmt.Sprintf(
			"for (%s %s : %s) ",
			gentype.Java.VariableTypeName(v.Type),
			v.Name,
			r.expr(x.Collection, depth),
		) + braces(r.block(x.Body, depth+1), depth)
	case *dsl.ForStmt:
		v := x.Init.Var.Base()
		return ind + fmt.Sprintf(
			"for (%s %s = %s; %s; %s) ",
			gentype.Java.VariableTypeName(v.Type),
			v.Name,
			r.expr(x.Init.Init, depth),
			r.expr(x.Cond, depth),
			r.expr(x.After, depth),
		) + braces(r.block(x.Body, depth+1), depth)
	case *dsl.IfStmt:
		return ind + "if (" + r.expr(x.Cond, depth) + ") " + braces(r.block(x.Body, depth+1), depth)
	case *dsl.ElseIfStmt:
		return ind + "else if (" + r.expr(x.Cond, depth) + ") " + braces(r.block(x.Body, depth+1), depth)
	case *dsl.ElseStmt:
		return ind + "else " + braces(r.block(x.Body, depth+1), depth)
	case *dsl.TryCatchStmt:
		if x.Handler == nil {
			panic(fmt.Errorf("java: try block without exception handler"))
		}
		return ind + "try " + braces(r.block(x.Body, depth+1), depth) +
			" catch (" + gentype.Java.VariableTypeName(x.Catch.Type) + " " + x.Catch.Name + ") " +
			braces(r.block(x.Handler, depth+1), depth)
	case *dsl.ScopeStmt:
		return ind + braces(r.block(x.Body, depth+1), depth)
	case dsl.Expression:
		code := r.expr(x, depth)
		if code == "" {
			return ""
		}
		return ind + code + ";"
	default:
		panic(fmt.Errorf("java: unsupported statement %T", s))
	}
}

func (r javaRenderer) declaration(d *dsl.Declaration, depth int) string {
	var b strings.Builder
	if !d.Mutable {
		b.WriteString("final ")
	}
	v := d.Var.Base()
	b.WriteString(gentype.Java.VariableTypeName(v.Type))
	b.WriteByte(' ')
	b.WriteString(v.Name)
	if d.Init != nil {
		b.WriteString(" = ")
		b.WriteString(r.expr(d.Init, depth))
	}

	return b.String()
}

func (r javaRenderer) assign(a *dsl.AssignStmt, depth int) string {
	return r.expr(a.Var, depth) + " = " + r.expr(a.X, depth)
}

func (r javaRenderer) mapSet(m *dsl.MapSetStmt, depth int) string {
	return m.Map.Name + ".put(" + r.expr(m.Key, depth) + ", " + r.expr(m.Value, depth) + ")"
}

func (r javaRenderer) arraySet(a *dsl.ArraySetStmt, depth int) string {
	return r.operand(a.Array, depth) + "[" + r.expr(a.Index, depth) + "] = " + r.expr(a.Value, depth)
}

func (r javaRenderer) expr(e dsl.Expression, depth int) string {
	switch x := e.(type) {
	case *dsl.Text:
		return x.Code
	case dsl.Empty:
		return ""
	case *dsl.CallExpr:
		call := x.Name + "(" + r.list(x.Args, depth) + ")"
		if x.Receiver == nil {
			return call
		}
		return r.operand(x.Receiver, depth) + "." + call
	case *dsl.PropertyExpr:
		return r.operand(x.Receiver, depth) + "." + x.Name
	case *dsl.LambdaExpr:
		return r.lambda(x, depth)
	case *dsl.NewArrayExpr:
		items := make([]string, len(x.Items))
		for i, item := range x.Items {
			items[i] = r.expr(item, depth)
		}
		return gentype.Java.NewArray(x.Elem, items)
	case *dsl.NewSizedArrayExpr:
		return gentype.Java.NewSizedArray(x.Elem, r.expr(x.Size, depth))
	case *dsl.DefaultExpr:
		return gentype.Java.DefaultValue(x.Type)
	case *dsl.NotExpr:
		return "!" + r.operand(x.X, depth)
	case *dsl.BinaryExpr:
		return r.operand(x.X, depth) + " " + string(x.Op) + " " + r.operand(x.Y, depth)
	case *dsl.IncrementExpr:
		return r.operand(x.X, depth) + "++"
	case *dsl.ConvertExpr:
		return "(" + gentype.Java.VariableTypeName(x.To) + ") (" + r.expr(x.X, depth) + ")"
	case *dsl.CondExpr:
		return r.operand(x.Cond, depth) + " ? " + r.operand(x.Then, depth) + " : " + r.operand(x.Else, depth)
	case *dsl.MapGetExpr:
		return x.Map.Name + ".get(" + r.expr(x.Key, depth) + ")"
	case *dsl.MapContainsExpr:
		return x.Map.Name + ".containsKey(" + r.expr(x.Key, depth) + ")"
	case *dsl.MapSizeExpr:
		return x.Map.Name + ".size()"
	case *dsl.MapKeysExpr:
		return x.Map.Name + ".keySet()"
	case *dsl.MapComputeIfAbsentExpr:
		return x.Map.Name + ".computeIfAbsent(" + r.expr(x.Key, depth) + ", " + r.lambda(x.Supplier, depth) + ")"
	case *dsl.ArrayGetExpr:
		return r.operand(x.Array, depth) + "[" + r.expr(x.Index, depth) + "]"
	case dsl.Var:
		return x.Base().Name
	default:
		panic(fmt.Errorf("java: unsupported expression %T", e))
	}
}

// operand renders an expression which is a part of a bigger one.
func (r javaRenderer) operand(e dsl.Expression, depth int) string {
	switch e.(type) {
	case *dsl.LambdaExpr, *dsl.ConvertExpr, *dsl.BinaryExpr, *dsl.NotExpr, *dsl.CondExpr:
		return "(" + r.expr(e, depth) + ")"
	default:
		return r.expr(e, depth)
	}
}

func (r javaRenderer) list(args []dsl.Expression, depth int) string {
	items := make([]string, len(args))
	for i, arg := range args {
		items[i] = r.expr(arg, depth)
	}

	return strings.Join(items, ", ")
}

func (r javaRenderer) lambda(l *dsl.LambdaExpr, depth int) string {
	head := l.Arg + " -> "
	if l.Arg == "" {
		head = "() -> "
	}

	if stmts := l.Body.Statements(); len(stmts) == 1 {
		if code, ok := r.inline(stmts[0], depth); ok {
			return head + code
		}
	}

	return head + braces(r.block(l.Body, depth+1), depth)
}

// inline renders a statement as a lambda expression body if possible.
func (r javaRenderer) inline(s dsl.Statement, depth int) (string, bool) {
	switch x := s.(type) {
	case *dsl.ReturnStmt:
		return r.expr(x.X, depth), true
	case *dsl.MapSetStmt:
		return r.mapSet(x, depth), true
	case *dsl.ArraySetStmt:
		return r.arraySet(x, depth), true
	case *dsl.AssignStmt:
		return r.assign(x, depth), true
	case dsl.Expression:
		if isEmpty(x) {
			return "", false
		}
		return r.expr(x, depth), true
	default:
		return "", false
	}
}
