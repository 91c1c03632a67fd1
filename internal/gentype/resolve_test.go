package gentype

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		want *Type
	}{
		{"int", Int},
		{"java.lang.Integer", Int},
		{"kotlin.Long", Long},
		{"java.lang.Double", Double},
		{"boolean", Boolean},
		{"kotlin.String", String},
		{"void", Void},
		{"", Any},
		{"java.lang.Object", Any},
		{"not a type", Any},
		{"com.example.Person", Class("com.example.Person")},
		{"java.util.Optional<java.lang.String>", GenericClass("java.util.Optional", 1)},
		{"java.util.Optional", GenericClass("java.util.Optional", 1)},
		{"java.util.Map<java.lang.String, java.util.List<java.lang.Integer>>", GenericClass("java.util.Map", 2)},
		{"java.util.OptionalInt", Class("java.util.OptionalInt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.name)
			if !Equal(tt.want, got) {
				t.Errorf("resolve %q: got %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestResolveStream(t *testing.T) {
	require.Same(t, Int, ResolveStream("java.util.stream.IntStream"))
	require.Same(t, Long, ResolveStream("java.util.stream.LongStream"))
	require.Same(t, Double, ResolveStream("java.util.stream.DoubleStream"))
	require.Same(t, Void, ResolveStream("void"))
	require.Same(t, Any, ResolveStream("java.util.stream.Stream<java.lang.Integer>"))
	require.Same(t, Any, ResolveStream(""))
}

func TestUnwrapOptional(t *testing.T) {
	require.Same(t, Int, UnwrapOptional(Class("java.util.OptionalInt")))
	require.Same(t, Long, UnwrapOptional(Class("java.util.OptionalLong")))
	require.Same(t, Double, UnwrapOptional(Class("java.util.OptionalDouble")))
	require.Same(t, Any, UnwrapOptional(Resolve("java.util.Optional<java.lang.String>")))

	require.False(t, IsOptional(Int))
	require.Panics(t, func() {
		UnwrapOptional(Int)
	})
	require.Panics(t, func() {
		UnwrapOptional(Class("java.util.List"))
	})
}

func TestEqual(t *testing.T) {
	require.True(t, Equal(MapOf(Int, ArrayOf(Any)), MapOf(Int, ArrayOf(Any))))
	require.False(t, Equal(MapOf(Int, Any), LinkedMapOf(Int, Any)))
	require.False(t, Equal(ArrayOf(Int), ListOf(Int)))
	require.False(t, Equal(Int, nil))
}
