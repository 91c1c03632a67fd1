package trace

import (
	"reflect"
	"testing"

	"github.com/sirkon/deepequal"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sirkon/streamtrace/internal/chain"
	"github.com/sirkon/streamtrace/internal/gentype"
)

func decode(t *testing.T, text string) Value {
	t.Helper()

	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(text), &n))
	v, err := DecodeValue(&n)
	require.NoError(t, err)
	return v
}

func testCall(kind chain.Kind) *chain.Call {
	return &chain.Call{
		Name:       kind.String(),
		Kind:       kind,
		TypeBefore: gentype.Int,
		TypeAfter:  gentype.Int,
	}
}

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Value
	}{
		{name: "null", text: "~", want: Null{}},
		{name: "int", text: "12", want: Int(12)},
		{name: "tagged int", text: "!int 12", want: Int(12)},
		{name: "long", text: "!long 1099511627776", want: Long(1099511627776)},
		{name: "double", text: "1.5", want: Double(1.5)},
		{name: "tagged double", text: "!double 2", want: Double(2)},
		{name: "bool", text: "true", want: Bool(true)},
		{name: "string", text: `"12"`, want: String("12")},
		{name: "object", text: "{type: com.example.Person, id: 7, text: Bob}", want: &Object{Type: "com.example.Person", ID: 7, Text: "Bob"}},
		{
			name: "array",
			text: "!int [1, 2]",
			want: &Array{Elem: "int", Items: []Value{Int(1), Int(2)}},
		},
		{
			name: "nested array",
			text: "[[], !string [a]]",
			want: &Array{Elem: "any", Items: []Value{
				&Array{Elem: "any"},
				&Array{Elem: "string", Items: []Value{String("a")}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decode(t, tt.text)
			if !reflect.DeepEqual(tt.want, got) {
				deepequal.SideBySide(t, "value", tt.want, got)
			}
		})
	}

	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("!unknown x"), &n))
	_, err := DecodeValue(&n)
	require.ErrorIs(t, err, ErrUnexpectedValue)
}

func TestEqual(t *testing.T) {
	require.True(t, Equal(Int(1), Int(1)))
	require.False(t, Equal(Int(1), Long(1)))
	require.True(t, Equal(&Object{Type: "A", ID: 1, Text: "x"}, &Object{Type: "A", ID: 1}))
	require.False(t, Equal(&Object{Type: "A", ID: 1}, &Object{Type: "A", ID: 2}))
	require.True(t, Equal(&Array{Items: []Value{Int(1)}}, &Array{Items: []Value{Int(1)}}))
	require.False(t, Equal(&Array{Items: []Value{Int(1)}}, Int(1)))
}

func TestOrder(t *testing.T) {
	o, err := NewOrder(NewElement(1, Int(10)), NewElement(3, Int(20)))
	require.NoError(t, err)

	require.Equal(t, 2, o.Len())
	require.Equal(t, []int{1, 3}, o.Times())
	require.Equal(t, Int(20), o.At(3).Value)
	require.Nil(t, o.At(2))

	require.ErrorIs(t, o.Add(NewElement(3, Int(30))), ErrDuplicateTime)
	require.ErrorIs(t, o.Add(NewElement(2, Int(30))), ErrUnorderedTrace)
	require.Equal(t, 2, o.Len())

	require.Equal(t, NewElement(5, Int(1)).ID, NewElement(5, Long(2)).ID)
	require.NotEqual(t, NewElement(5, Int(1)).ID, NewElement(6, Int(1)).ID)
}

const peekTrace = `
- - !int [1, 3, 5]
  - !int [10, 20, 30]
- - !int [2, 6]
  - !int [10, 30]
`

func TestPeek(t *testing.T) {
	info, err := Peek(testCall(chain.KindFilter), decode(t, peekTrace))
	require.NoError(t, err)

	require.Equal(t, []int{1, 3, 5}, info.Before.Times())
	require.Equal(t, []int{2, 6}, info.After.Times())
	require.Equal(t, Int(30), info.After.At(6).Value)
	require.Nil(t, info.Direct)

	_, err = Peek(testCall(chain.KindFilter), decode(t, "[[!int [1], !int []], [[], []]]"))
	require.ErrorIs(t, err, ErrUnexpectedValue)

	_, err = Peek(testCall(chain.KindFilter), decode(t, "[[!int [3, 1], [a, b]], [[], []]]"))
	require.ErrorIs(t, err, ErrUnorderedTrace)
}

func TestDistinct(t *testing.T) {
	v := decode(t, `
- - - !int [0, 1, 2, 3, 4]
    - !int [5, 3, 5, 3, 5]
  - - !int [5, 6]
    - !int [5, 3]
- - !int [0, 2, 4, 1, 3]
  - !int [5, 5, 5, 6, 6]
`)

	info, err := Distinct(testCall(chain.KindDistinct), v)
	require.NoError(t, err)

	require.Equal(t, map[int][]int{0: {5}, 1: {6}, 2: {5}, 3: {6}, 4: {5}}, info.Direct)
	require.Equal(t, map[int][]int{5: {0, 2, 4}, 6: {1, 3}}, info.Reverse)
}

func TestTerminals(t *testing.T) {
	t.Run("result", func(t *testing.T) {
		info, err := ResultTerminal(testCall(chain.KindCount), decode(t, "[[[!int [1, 2], [a, b]], [[], []]], [!long 2]]"))
		require.NoError(t, err)
		require.Equal(t, 2, info.Before.Len())
		require.Equal(t, []int{ResultTime}, info.After.Times())
		require.Equal(t, Long(2), info.After.Elements()[0].Value)
	})

	t.Run("optional present", func(t *testing.T) {
		info, err := Optional(testCall(chain.KindFindFirst), decode(t, "[[[!int [1], [a]], [[], []]], [[true], [a]]]"))
		require.NoError(t, err)
		require.Equal(t, []int{ResultTime}, info.After.Times())
		require.Equal(t, String("a"), info.After.Elements()[0].Value)
	})

	t.Run("optional empty", func(t *testing.T) {
		info, err := Optional(testCall(chain.KindFindFirst), decode(t, "[[[[], []], [[], []]], [[false], [~]]]"))
		require.NoError(t, err)
		require.Equal(t, 0, info.After.Len())
	})

	t.Run("optional bad presence", func(t *testing.T) {
		_, err := Optional(testCall(chain.KindFindFirst), decode(t, "[[[[], []], [[], []]], [[1], [~]]]"))
		require.ErrorIs(t, err, ErrUnexpectedValue)
	})
}

func TestMatch(t *testing.T) {
	t.Run("stopped at value passed the filter", func(t *testing.T) {
		info, err := Match(testCall(chain.KindAnyMatch), decode(t, "[[[!int [1, 3], [1, 2]], [!int [4], [2]]], [true]]"))
		require.NoError(t, err)
		require.Equal(t, []int{1, 3}, info.Before.Times())
		require.Equal(t, []int{ResultTime}, info.After.Times())
		require.Equal(t, Bool(true), info.After.Elements()[0].Value)
		require.Equal(t, map[int][]int{3: {ResultTime}}, info.Direct)
		require.Equal(t, map[int][]int{ResultTime: {3}}, info.Reverse)
	})

	t.Run("nothing passed the filter", func(t *testing.T) {
		info, err := Match(testCall(chain.KindNoneMatch), decode(t, "[[[!int [1, 2], [1, 3]], [[], []]], [true]]"))
		require.NoError(t, err)
		require.Equal(t, []int{1, 2}, info.Before.Times())
		require.Equal(t, map[int][]int{1: {ResultTime}, 2: {ResultTime}}, info.Direct)
		require.Equal(t, map[int][]int{ResultTime: {1, 2}}, info.Reverse)
	})

	t.Run("empty stream", func(t *testing.T) {
		info, err := Match(testCall(chain.KindAllMatch), decode(t, "[[[[], []], [[], []]], [true]]"))
		require.NoError(t, err)
		require.Zero(t, info.Before.Len())
		require.Empty(t, info.Direct)
	})

	t.Run("passed value was not observed before the filter", func(t *testing.T) {
		_, err := Match(testCall(chain.KindAnyMatch), decode(t, "[[[!int [1], [1]], [!int [5], [1]]], [true]]"))
		require.ErrorIs(t, err, ErrUnexpectedValue)
	})

	t.Run("bad result", func(t *testing.T) {
		_, err := Match(testCall(chain.KindAllMatch), decode(t, "[[[[], []], [[], []]], [1]]"))
		require.ErrorIs(t, err, ErrUnexpectedValue)
	})
}
