package exprjson

import (
	"errors"
	"testing"

	"github.com/wildfunctions/arithmetic_ast/pkg/expr"
)

func TestMarshal(t *testing.T) {
	tree := expr.NewAdd(expr.NewParameter(0), expr.NewConstant(2))
	data, err := Marshal(tree)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"kind":"add","left":{"kind":"param","index":0},"right":{"kind":"const","value":2}}`
	if string(data) != want {
		t.Errorf("Marshal = %s\nwant      %s", data, want)
	}
}

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"kind":"const","value":0}`, "0"},
		{`{"kind":"param","index":42}`, "P42"},
		{`{"kind":"plus","child":{"kind":"param","index":42}}`, "(+P42)"},
		{
			`{"kind":"neg","child":{"kind":"pow",
			  "left":{"kind":"add","left":{"kind":"param","index":0},"right":{"kind":"param","index":1}},
			  "right":{"kind":"mul","left":{"kind":"param","index":2},"right":{"kind":"param","index":3}}}}`,
			"(-((P0 + P1) ^ (P2 * P3)))",
		},
		{`{"kind":"div","left":{"kind":"const","value":1},"right":{"kind":"sub","left":{"kind":"param","index":0},"right":{"kind":"const","value":0.5}}}`, "(1 / (P0 - 0.5))"},
	}
	for _, tc := range tests {
		n, err := Unmarshal([]byte(tc.in))
		if err != nil {
			t.Errorf("Unmarshal(%s): %v", tc.in, err)
			continue
		}
		if n.String() != tc.want {
			t.Errorf("Unmarshal = %s, want %s", n, tc.want)
		}
	}
}

func TestRoundTripKeepsKinds(t *testing.T) {
	tree := expr.NewUnaryMinus(expr.NewDiv(
		expr.NewUnaryPlus(expr.NewParameter(3)),
		expr.NewPow(expr.NewConstant(-1.5), expr.NewSub(expr.NewParameter(0), expr.NewConstant(0))),
	))
	data, err := MarshalIndent(tree)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if back.String() != tree.String() {
		t.Errorf("round trip = %s, want %s", back, tree)
	}
	want := expr.CountKinds(tree)
	got := expr.CountKinds(back)
	for k, n := range want {
		if got[k] != n {
			t.Errorf("kind %v: got %d nodes, want %d", k, got[k], n)
		}
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []string{
		`{"kind":"sqrt","child":{"kind":"param","index":0}}`,
		`{"kind":"const"}`,
		`{"kind":"param"}`,
		`{"kind":"param","index":-1}`,
		`{"kind":"neg"}`,
		`{"kind":"add","left":{"kind":"param","index":0}}`,
	}
	for _, in := range tests {
		if _, err := Unmarshal([]byte(in)); !errors.Is(err, ErrMalformed) {
			t.Errorf("Unmarshal(%s) error = %v, want ErrMalformed", in, err)
		}
	}

	if _, err := Unmarshal([]byte(`{"kind":`)); err == nil {
		t.Error("expected syntax error")
	}
}

func TestUnmarshalList(t *testing.T) {
	nodes, err := UnmarshalList([]byte(`[
		{"kind":"param","index":0},
		{"kind":"mul","left":{"kind":"const","value":0},"right":{"kind":"param","index":1}}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 2 || nodes[1].String() != "(0 * P1)" {
		t.Errorf("UnmarshalList = %v", nodes)
	}

	_, err = UnmarshalList([]byte(`[{"kind":"param","index":0}, {"kind":"nope"}]`))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("error = %v, want ErrMalformed", err)
	}
}
