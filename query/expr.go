// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/token"
	"go/types"
	"math"

	"github.com/aclements/heartdash/dataset"
)

// An Expr is a compiled boolean expression over the fields of a row,
// such as
//
//	age >= 40 && chol < 300 && status == "diseased"
//
// Expressions use Go syntax. Every field name is a number; "male" and
// "diseased" are bools; "gender" and "status" are the strings used by
// dataset.Gender and dataset.Status.
type Expr struct {
	src string
	fn  boolNode
}

// CompileExpr parses and type-checks src.
func CompileExpr(src string) (*Expr, error) {
	c := &compiler{names: rowNames}
	fn, err := c.compile(src)
	if err != nil {
		return nil, err
	}
	return &Expr{src, fn}, nil
}

// Match reports whether r satisfies e.
func (e *Expr) Match(r *dataset.Row) bool {
	return e.fn(r)
}

func (e *Expr) String() string {
	return e.src
}

var rowNames = map[string]exprNode{
	"true":     boolNode(func(*dataset.Row) bool { return true }),
	"false":    boolNode(func(*dataset.Row) bool { return false }),
	"male":     boolNode((*dataset.Row).Male),
	"diseased": boolNode((*dataset.Row).Diseased),
	"gender":   stringNode(dataset.Gender),
	"status":   stringNode(dataset.Status),
}

func init() {
	for i := 0; i < dataset.NumFields; i++ {
		f := dataset.Field(i)
		rowNames[f.String()] = numberNode(func(r *dataset.Row) float64 {
			return r.Get(f)
		})
	}
}

type compiler struct {
	fset  *token.FileSet
	names map[string]exprNode
}

func (c *compiler) compile(src string) (fn boolNode, err error) {
	c.fset = token.NewFileSet()
	x, err := parser.ParseExprFrom(c.fset, "", src, 0)
	if err != nil {
		return nil, err
	}

	// Translate AST into nested closures and type-check.
	defer func() {
		err2 := recover()
		if err2, ok := err2.(*compileError); ok {
			fn, err = nil, err2
		} else if err2 != nil {
			panic(err2)
		}
	}()
	return c.bool(x, c.expr(x)), nil
}

// bad panics with a compileError for the given message.
func (c *compiler) bad(n ast.Node, format string, a ...interface{}) {
	panic(&compileError{c.fset.Position(n.Pos()).Column, fmt.Sprintf(format, a...)})
}

type compileError struct {
	col int
	msg string
}

func (e *compileError) Error() string {
	return fmt.Sprintf("col %d: %s", e.col, e.msg)
}

type exprNode interface {
	// typ returns the type of this node's result as a string.
	typ() string
}

type (
	boolNode   func(r *dataset.Row) bool
	numberNode func(r *dataset.Row) float64
	stringNode func(r *dataset.Row) string
)

func (boolNode) typ() string   { return "bool" }
func (numberNode) typ() string { return "number" }
func (stringNode) typ() string { return "string" }

// bool returns n as a boolNode or panics with a type error.
func (c *compiler) bool(x ast.Expr, n exprNode) boolNode {
	fn, ok := n.(boolNode)
	if !ok {
		c.bad(x, "want bool, but %s has type %s", types.ExprString(x), n.typ())
	}
	return fn
}

// number returns n as a numberNode or panics with a type error.
func (c *compiler) number(x ast.Expr, n exprNode) numberNode {
	fn, ok := n.(numberNode)
	if !ok {
		c.bad(x, "want number, but %s has type %s", types.ExprString(x), n.typ())
	}
	return fn
}

// sameType requires that x and y have the same type.
func (c *compiler) sameType(b *ast.BinaryExpr, x, y exprNode) {
	if x.typ() != y.typ() {
		c.bad(b, "operands of %s must have same type, not %s and %s", b.Op, x.typ(), y.typ())
	}
}

// expr type-checks and compiles x to an exprNode.
func (c *compiler) expr(x ast.Expr) exprNode {
	switch x := x.(type) {
	case *ast.BasicLit:
		v := constant.MakeFromLiteral(x.Value, x.Kind, 0)
		switch x.Kind {
		case token.INT, token.FLOAT:
			f, _ := constant.Float64Val(v)
			return numberNode(func(*dataset.Row) float64 { return f })
		case token.STRING:
			s := constant.StringVal(v)
			return stringNode(func(*dataset.Row) string { return s })
		}

	case *ast.BinaryExpr:
		l, r := c.expr(x.X), c.expr(x.Y)
		switch x.Op {
		case token.ADD, token.SUB, token.MUL, token.QUO, token.REM:
			l, r := c.number(x.X, l), c.number(x.Y, r)
			op := arith[x.Op]
			return numberNode(func(row *dataset.Row) float64 {
				return op(l(row), r(row))
			})

		case token.LAND:
			l, r := c.bool(x.X, l), c.bool(x.Y, r)
			return boolNode(func(row *dataset.Row) bool {
				return l(row) && r(row)
			})
		case token.LOR:
			l, r := c.bool(x.X, l), c.bool(x.Y, r)
			return boolNode(func(row *dataset.Row) bool {
				return l(row) || r(row)
			})

		case token.LSS, token.GTR, token.LEQ, token.GEQ, token.EQL, token.NEQ:
			c.sameType(x, l, r)
			return c.compare(x, l, r)
		}

	case *ast.Ident:
		if node, ok := c.names[x.Name]; ok {
			return node
		}
		c.bad(x, "undefined: %s", x.Name)

	case *ast.ParenExpr:
		return c.expr(x.X)

	case *ast.UnaryExpr:
		n := c.expr(x.X)
		switch x.Op {
		case token.ADD:
			return c.number(x.X, n)
		case token.SUB:
			n := c.number(x.X, n)
			return numberNode(func(r *dataset.Row) float64 { return -n(r) })
		case token.NOT:
			n := c.bool(x.X, n)
			return boolNode(func(r *dataset.Row) bool { return !n(r) })
		}
	}

	c.bad(x, "unsupported expression %s", types.ExprString(x))
	return nil
}

var arith = map[token.Token]func(x, y float64) float64{
	token.ADD: func(x, y float64) float64 { return x + y },
	token.SUB: func(x, y float64) float64 { return x - y },
	token.MUL: func(x, y float64) float64 { return x * y },
	token.QUO: func(x, y float64) float64 { return x / y },
	token.REM: math.Mod,
}

func (c *compiler) compare(b *ast.BinaryExpr, l, r exprNode) boolNode {
	op := b.Op
	switch l := l.(type) {
	case numberNode:
		r := r.(numberNode)
		return boolNode(func(row *dataset.Row) bool {
			x, y := l(row), r(row)
			return cmpOrdered(x, y, op)
		})
	case stringNode:
		r := r.(stringNode)
		return boolNode(func(row *dataset.Row) bool {
			return cmpOrdered(l(row), r(row), op)
		})
	case boolNode:
		if op != token.EQL && op != token.NEQ {
			c.bad(b, "operator %s not defined on bool", op)
		}
		r := r.(boolNode)
		return boolNode(func(row *dataset.Row) bool {
			return (l(row) == r(row)) == (op == token.EQL)
		})
	}
	c.bad(b, "cannot compare %s", l.typ())
	return nil
}

func cmpOrdered[T float64 | string](x, y T, op token.Token) bool {
	switch op {
	case token.LSS:
		return x < y
	case token.GTR:
		return x > y
	case token.LEQ:
		return x <= y
	case token.GEQ:
		return x >= y
	case token.EQL:
		return x == y
	case token.NEQ:
		return x != y
	}
	panic("bad comparison " + op.String())
}
