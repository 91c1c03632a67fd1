package emit

import (
	"fmt"
	"strings"

	"github.com/sirkon/streamtrace/internal/dsl"
	"github.com/sirkon/streamtrace/internal/gentype"
)

// kotlinRenderer renders nodes in concise expressions style: no statement
// terminators, indexed access to maps and scopes made with run blocks.
type kotlinRenderer struct{}

func (kotlinRenderer) Types() *gentype.Dialect {
	return gentype.Kotlin
}

func (r kotlinRenderer) Render(n dsl.Node) string {
	switch x := n.(type) {
	case *dsl.Block:
		return r.block(x, 0)
	case dsl.Expression:
		return r.expr(x, 0)
	case dsl.Statement:
		return r.statement(x, 0)
	default:
		panic(fmt.Errorf("kotlin: unsupported node %T", n))
	}
}

func (r kotlinRenderer) block(b *dsl.Block, depth int) string {
	lines := make([]string, 0, b.Len())
	for _, s := range b.Statements() {
		lines = append(lines, r.statement(s, depth))
	}

	return joinLines(lines)
}

// lambdaBlock renders a lambda body where returns are bare values.
func (r kotlinRenderer) lambdaBlock(b *dsl.Block, depth int) string {
	lines := make([]string, 0, b.Len())
	for _, s := range b.Statements() {
		if ret, ok := s.(*dsl.ReturnStmt); ok {
			lines = append(lines, indent(depth)+r.expr(ret.X, depth))
			continue
		}
		lines = append(lines, r.statement(s, depth))
	}

	return joinLines(lines)
}

func (r kotlinRenderer) statement(s dsl.Statement, depth int) string {
	ind := indent(depth)
	switch x := s.(type) {
	case *dsl.Block:
		return r.block(x, depth)
	case *dsl.Declaration:
		return ind + r.declaration(x, depth)
	case *dsl.AssignStmt:
		return ind + r.assign(x, depth)
	case *dsl.MapSetStmt:
		return ind + r.mapSet(x, depth)
	case *dsl.ArraySetStmt:
		return ind + r.arraySet(x, depth)
	case *dsl.ReturnStmt:
		return ind + "return " + r.expr(x.X, depth)
	case *dsl.ForEachStmt:
		return ind + "for (" + x.Var.Base().Name + " in " + r.expr(x.Collection, depth) + ") " +
			braces(r.block(x.Body, depth+1), depth)
	case *dsl.ForStmt:
		// There is no counted loop, it is emulated with a while loop in its own scope.
		inner := indent(depth + 1)
		body := joinLines([]string{
			r.block(x.Body, depth+2),
			indent(depth+2) + r.expr(x.After, depth+2),
		})
		return ind + "run " + braces(
			inner+r.declaration(&dsl.Declaration{Var: x.Init.Var, Init: x.Init.Init, Mutable: true}, depth+1)+"\n"+
				inner+"while ("+r.expr(x.Cond, depth+1)+") "+braces(body, depth+1),
			depth,
		)
	case *dsl.IfStmt:
		return ind + "if (" + r.expr(x.Cond, depth) + ") " + braces(r.block(x.Body, depth+1), depth)
	case *dsl.ElseIfStmt:
		return ind + "else if (" + r.expr(x.Cond, depth) + ") " + braces(r.block(x.Body, depth+1), depth)
	case *dsl.ElseStmt:
		return ind + "else " + braces(r.block(x.Body, depth+1), depth)
	case *dsl.TryCatchStmt:
		if x.Handler == nil {
			panic(fmt.Errorf("kotlin: try block without exception handler"))
		}
		// Catch parameters cannot be nullable.
		typeName := strings.TrimSuffix(gentype.Kotlin.VariableTypeName(x.Catch.Type), "?")
		return ind + "try " + braces(r.block(x.Body, depth+1), depth) +
			" catch (" + x.Catch.Name + ": " + typeName + ") " +
			braces(r.block(x.Handler, depth+1), depth)
	case *dsl.ScopeStmt:
		return ind + "run " + braces(r.block(x.Body, depth+1), depth)
	case dsl.Expression:
		code := r.expr(x, depth)
		if code == "" {
			return ""
		}
		return ind + code
	default:
		panic(fmt.Errorf("kotlin: unsupported statement %T", s))
	}
}

func (r kotlinRenderer) declaration(d *dsl.Declaration, depth int) string {
	var b strings.Builder
	if d.Mutable {
		b.WriteString("var ")
	} else {
		b.WriteString("val ")
	}
	v := d.Var.Base()
	b.WriteString(v.Name)
	b.WriteString(": ")
	b.WriteString(gentype.Kotlin.VariableTypeName(v.Type))
	if d.Init != nil {
		b.WriteString(" = ")
		b.WriteString(r.expr(d.Init, depth))
	}

	return b.String()
}

func (r kotlinRenderer) assign(a *dsl.AssignStmt, depth int) string {
	return r.expr(a.Var, depth) + " = " + r.expr(a.X, depth)
}

func (r kotlinRenderer) mapSet(m *dsl.MapSetStmt, depth int) string {
	return m.Map.Name + "[" + r.expr(m.Key, depth) + "] = " + r.expr(m.Value, depth)
}

func (r kotlinRenderer) arraySet(a *dsl.ArraySetStmt, depth int) string {
	return r.operand(a.Array, depth) + "[" + r.expr(a.Index, depth) + "] = " + r.expr(a.Value, depth)
}

func (r kotlinRenderer) expr(e dsl.Expression, depth int) string {
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
		return r.receiver(x.Receiver, depth) + "." + call
	case *dsl.PropertyExpr:
		return r.receiver(x.Receiver, depth) + "." + x.Name
	case *dsl.LambdaExpr:
		return r.lambda(x.Arg, x.Body, depth)
	case *dsl.NewArrayExpr:
		items := make([]string, len(x.Items))
		for i, item := range x.Items {
			items[i] = r.expr(item, depth)
		}
		return gentype.Kotlin.NewArray(x.Elem, items)
	case *dsl.NewSizedArrayExpr:
		return gentype.Kotlin.NewSizedArray(x.Elem, r.expr(x.Size, depth))
	case *dsl.DefaultExpr:
		return gentype.Kotlin.DefaultValue(x.Type)
	case *dsl.NotExpr:
		return "!" + r.operand(x.X, depth)
	case *dsl.BinaryExpr:
		return r.operand(x.X, depth) + " " + string(x.Op) + " " + r.operand(x.Y, depth)
	case *dsl.IncrementExpr:
		return r.operand(x.X, depth) + "++"
	case *dsl.ConvertExpr:
		return gentype.Kotlin.VariableTypeName(x.To) + "(" + r.expr(x.X, depth) + ")"
	case *dsl.CondExpr:
		return "if (" + r.expr(x.Cond, depth) + ") " + r.operand(x.Then, depth) + " else " + r.operand(x.Else, depth)
	case *dsl.MapGetExpr:
		return x.Map.Name + ".getValue(" + r.expr(x.Key, depth) + ")"
	case *dsl.MapContainsExpr:
		return r.operand(x.Key, depth) + " in " + x.Map.Name
	case *dsl.MapSizeExpr:
		return x.Map.Name + ".size"
	case *dsl.MapKeysExpr:
		return x.Map.Name + ".keys"
	case *dsl.MapComputeIfAbsentExpr:
		// Supplier of getOrPut takes no arguments.
		return x.Map.Name + ".getOrPut(" + r.expr(x.Key, depth) + ") " + r.lambda("", x.Supplier.Body, depth)
	case *dsl.ArrayGetExpr:
		return r.operand(x.Array, depth) + "[" + r.expr(x.Index, depth) + "]"
	case dsl.Var:
		return x.Base().Name
	default:
		panic(fmt.Errorf("kotlin: unsupported expression %T", e))
	}
}

func (r kotlinRenderer) operand(e dsl.Expression, depth int) string {
	switch e.(type) {
	case *dsl.BinaryExpr, *dsl.NotExpr, *dsl.CondExpr:
		return "(" + r.expr(e, depth) + ")"
	default:
		return r.expr(e, depth)
	}
}

// receiver renders a call or property receiver. Variables of nullable types are
// asserted to be non-null.
func (r kotlinRenderer) receiver(e dsl.Expression, depth int) string {
	if v, ok := e.(dsl.Var); ok && isNullable(v.Base().Type) {
		return v.Base().Name + "!!"
	}

	return r.operand(e, depth)
}

func isNullable(t *gentype.Type) bool {
	switch t.Kind() {
	case gentype.KindAny, gentype.KindClass, gentype.KindException:
		return true
	default:
		return false
	}
}

func (r kotlinRenderer) list(args []dsl.Expression, depth int) string {
	items := make([]string, len(args))
	for i, arg := range args {
		items[i] = r.expr(arg, depth)
	}

	return strings.Join(items, ", ")
}

func (r kotlinRenderer) lambda(arg string, body *dsl.Block, depth int) string {
	head := "{ "
	if arg != "" {
		head = "{ " + arg + " -> "
	}

	if stmts := body.Statements(); len(stmts) == 1 {
		if code, ok := r.inline(stmts[0], depth); ok {
			return head + code + " }"
		}
	}

	code := r.lambdaBlock(body, depth+1)
	if code == "" {
		return strings.TrimSuffix(head, " ") + "}"
	}
	return strings.TrimSuffix(head, " ") + "\n" + code + "\n" + indent(depth) + "}"
}

func (r kotlinRenderer) inline(s dsl.Statement, depth int) (string, bool) {
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
