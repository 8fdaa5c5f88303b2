// Package exprjson encodes expression trees as JSON objects:
//
//	{"kind":"add","left":{"kind":"param","index":0},"right":{"kind":"const","value":2}}
//
// Unary nodes carry their operand in "child"; power uses "left" for the base
// and "right" for the exponent. Kind names are those of expr.Kind.String.
package exprjson

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wildfunctions/arithmetic_ast/pkg/expr"
)

// ErrMalformed is wrapped by every decoding error that is not a JSON syntax
// error.
var ErrMalformed = errors.New("malformed expression")

type wireNode struct {
	Kind  string    `json:"kind"`
	Value *float64  `json:"value,omitempty"`
	Index *int      `json:"index,omitempty"`
	Child *wireNode `json:"child,omitempty"`
	Left  *wireNode `json:"left,omitempty"`
	Right *wireNode `json:"right,omitempty"`
}

// Marshal encodes a tree.
func Marshal(node expr.ExprNode) ([]byte, error) {
	return json.Marshal(toWire(node))
}

// MarshalIndent encodes a tree with indentation, for files meant to be read.
func MarshalIndent(node expr.ExprNode) ([]byte, error) {
	return json.MarshalIndent(toWire(node), "", "  ")
}

// Unmarshal decodes a single tree.
func Unmarshal(data []byte) (expr.ExprNode, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return fromWire(&w, "$")
}

// UnmarshalList decodes a JSON array of trees.
func UnmarshalList(data []byte) ([]expr.ExprNode, error) {
	var ws []*wireNode
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, err
	}
	nodes := make([]expr.ExprNode, 0, len(ws))
	for i, w := range ws {
		n, err := fromWire(w, fmt.Sprintf("$[%d]", i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func toWire(node expr.ExprNode) *wireNode {
	w := &wireNode{Kind: node.Kind().String()}
	switch n := node.(type) {
	case *expr.ConstNode:
		v := n.Val
		w.Value = &v
	case *expr.ParamNode:
		i := n.Index
		w.Index = &i
	case *expr.UnaryNode:
		w.Child = toWire(n.Child)
	case *expr.BinaryNode:
		w.Left = toWire(n.Left)
		w.Right = toWire(n.Right)
	}
	return w
}

func fromWire(w *wireNode, path string) (expr.ExprNode, error) {
	if w == nil {
		return nil, fmt.Errorf("%s: missing node: %w", path, ErrMalformed)
	}
	kind, ok := expr.ParseKind(w.Kind)
	if !ok {
		return nil, fmt.Errorf("%s: unknown kind %q: %w", path, w.Kind, ErrMalformed)
	}

	switch kind {
	case expr.KindConstant:
		if w.Value == nil {
			return nil, fmt.Errorf("%s: const without value: %w", path, ErrMalformed)
		}
		return expr.NewConstant(*w.Value), nil

	case expr.KindParameter:
		if w.Index == nil || *w.Index < 0 {
			return nil, fmt.Errorf("%s: param needs a non-negative index: %w", path, ErrMalformed)
		}
		return expr.NewParameter(*w.Index), nil

	case expr.KindUnaryPlus, expr.KindUnaryMinus:
		child, err := fromWire(w.Child, path+".child")
		if err != nil {
			return nil, err
		}
		if kind == expr.KindUnaryMinus {
			return expr.NewUnaryMinus(child), nil
		}
		return expr.NewUnaryPlus(child), nil

	default:
		left, err := fromWire(w.Left, path+".left")
		if err != nil {
			return nil, err
		}
		right, err := fromWire(w.Right, path+".right")
		if err != nil {
			return nil, err
		}
		return binaryCtors[kind](left, right), nil
	}
}

var binaryCtors = map[expr.Kind]func(l, r expr.ExprNode) *expr.BinaryNode{
	expr.KindAdd:      expr.NewAdd,
	expr.KindSubtract: expr.NewSub,
	expr.KindMultiply: expr.NewMul,
	expr.KindDivide:   expr.NewDiv,
	expr.KindPower:    expr.NewPow,
}
