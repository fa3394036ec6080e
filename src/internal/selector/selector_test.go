package selector

import (
	"reflect"
	"testing"

	"github.com/VectorBits/solo/src/internal/normalize"
	"github.com/VectorBits/solo/src/internal/parser"
)

func TestFunctionSelector(t *testing.T) {
	tests := []struct {
		sig  string
		want string
	}{
		{"transfer(address,uint256)", "0xa9059cbb"},
		{"balanceOf(address)", "0x70a08231"},
		{"approve(address,uint256)", "0x095ea7b3"},
		{"sweep(address,uint8)", "0xad931a9f"},
		{"fixed(uint256[3])", "0x130a7f62"},
	}
	for _, tt := range tests {
		if got := FunctionSelector(tt.sig); got != tt.want {
			t.Errorf("FunctionSelector(%q) = %s, want %s", tt.sig, got, tt.want)
		}
	}
}

func TestEventTopic(t *testing.T) {
	const want = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"
	if got := EventTopic("Transfer(address,address,uint256)").Hex(); got != want {
		t.Errorf("EventTopic = %s, want %s", got, want)
	}
}

func TestSignature(t *testing.T) {
	params := []parser.Parameter{
		{Type: "uint", Name: "a"},
		{Type: "address", Name: "b", Modifiers: []string{"array", "memory"}},
		{Type: "byte", Name: "c"},
		{Type: "int", Name: "d"},
	}
	if got, want := Signature("f", params), "f(uint256,address[],bytes1,int256)"; got != want {
		t.Errorf("Signature = %q, want %q", got, want)
	}
	fixed := []parser.Parameter{
		{Type: "uint", Name: "xs", Modifiers: []string{"array", "memory"}, Dims: []string{"3"}},
		{Type: "bytes32", Name: "m", Modifiers: []string{"array", "array"}, Dims: []string{"", "2"}},
	}
	if got, want := Signature("fixed", fixed), "fixed(uint256[3],bytes32[][2])"; got != want {
		t.Errorf("Signature = %q, want %q", got, want)
	}
	if got := Signature("g", nil); got != "g()" {
		t.Errorf("Signature(nil) = %q", got)
	}
}

func TestDerive(t *testing.T) {
	src := normalize.Normalize(`
interface IToken {
    function transfer(address to, uint amount) returns (bool);
}
contract Token is IToken {
    event Transfer(address indexed from, address indexed to, uint256 value);
    error Unauthorized(address caller);
    function transfer(address to, uint256 amount) public returns (bool) { return true; }
    function _move(address to) internal {}
    receive() external payable {}
}`)
	decls, err := parser.Parse(src, parser.Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []Entry{
		{Contract: "IToken", Kind: KindFunction, Signature: "transfer(address,uint256)", Selector: "0xa9059cbb"},
		{Contract: "Token", Kind: KindFunction, Signature: "transfer(address,uint256)", Selector: "0xa9059cbb"},
		{Contract: "Token", Kind: KindEvent, Signature: "Transfer(address,address,uint256)", Selector: "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"},
		{Contract: "Token", Kind: KindError, Signature: "Unauthorized(address)", Selector: FunctionSelector("Unauthorized(address)")},
	}
	if got := Derive(decls); !reflect.DeepEqual(got, want) {
		t.Errorf("Derive =\n%+v\nwant\n%+v", got, want)
	}
}

func TestDeriveResolvesUserTypes(t *testing.T) {
	src := normalize.Normalize(`
interface IERC20 { function balanceOf(address who) external view returns (uint256); }
library Lib { struct Point { int x; int y; } }
contract Vault {
    enum S { A, B }
    struct Pos { address owner; uint[2] range; S state; }
    function sweep(IERC20 token, S s) external {}
    function store(uint[3] memory xs) public {}
    function open(Pos calldata p, Pos[] calldata ps) external {}
    function move(Lib.Point memory to) external {}
    event Moved(Vault indexed from, S state);
}`)
	decls, err := parser.Parse(src, parser.Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var got []string
	for _, e := range Derive(decls) {
		if e.Contract != "Vault" {
			continue
		}
		got = append(got, e.Signature)
		if e.Kind == KindFunction && e.Selector != FunctionSelector(e.Signature) {
			t.Errorf("%s: selector %s", e.Signature, e.Selector)
		}
	}
	want := []string{
		"sweep(address,uint8)",
		"store(uint256[3])",
		"open((address,uint256[2],uint8),(address,uint256[2],uint8)[])",
		"move((int256,int256))",
		"Moved(address,uint8)",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("signatures =\n%q\nwant\n%q", got, want)
	}
}

func TestCanonicalTypeLeavesUserTypes(t *testing.T) {
	p := parser.Parameter{Type: "IERC20", Name: "token"}
	if got := CanonicalType(p); got != "IERC20" {
		t.Errorf("CanonicalType = %q", got)
	}
}
