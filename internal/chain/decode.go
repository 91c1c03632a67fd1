package chain

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/sirkon/streamtrace/internal/dsl"
	"github.com/sirkon/streamtrace/internal/gentype"
)

type qualifierDesc struct {
	Text     string `yaml:"text"`
	Type     string `yaml:"type"`
	Parallel bool   `yaml:"parallel"`
	Range    []int  `yaml:"range"`
}

type callDesc struct {
	Name     string   `yaml:"name"`
	Args     []string `yaml:"args"`
	Kind     *Kind    `yaml:"kind"`
	Before   string   `yaml:"before"`
	After    string   `yaml:"after"`
	Result   string   `yaml:"result"`
	Package  string   `yaml:"package"`
	Range    []int    `yaml:"range"`
	Parallel bool     `yaml:"parallel"`
}

type chainDesc struct {
	Qualifier    qualifierDesc `yaml:"qualifier"`
	Intermediate []callDesc    `yaml:"intermediate"`
	Terminal     *callDesc     `yaml:"terminal"`
}

// Decode reads a YAML chain description.
//
//	qualifier: {text: "list.stream()", type: "java.util.stream.Stream", range: [0, 13]}
//	intermediate:
//	  - {name: filter, args: ["x -> x > 1"], before: int, after: int, range: [14, 30]}
//	terminal: {name: count, before: int, result: long, range: [31, 38]}
//
// Element types missing in a call are inherited from the previous one.
func Decode(r io.Reader) (*Chain, error) {
	var desc chainDesc
	if err := yaml.NewDecoder(r).Decode(&desc); err != nil {
		return nil, fmt.Errorf("decode chain description: %w", err)
	}

	if desc.Terminal == nil || desc.Terminal.Name == "" {
		return nil, ErrEmptyChain
	}

	rng, err := decodeRange(desc.Qualifier.Range)
	if err != nil {
		return nil, fmt.Errorf("decode qualifier range: %w", err)
	}
	res := &Chain{
		Qualifier: Qualifier{
			Text:     desc.Qualifier.Text,
			Type:     gentype.ResolveStream(desc.Qualifier.Type),
			Range:    rng,
			Parallel: desc.Qualifier.Parallel,
		},
	}

	prev := res.Qualifier.Type
	for i, cd := range desc.Intermediate {
		call, err := decodeCall(&cd, prev, false)
		if err != nil {
			return nil, fmt.Errorf("decode intermediate call %d %s: %w", i, cd.Name, err)
		}
		res.Intermediate = append(res.Intermediate, call)
		prev = call.TypeAfter
	}

	call, err := decodeCall(desc.Terminal, prev, true)
	if err != nil {
		return nil, fmt.Errorf("decode terminal call %s: %w", desc.Terminal.Name, err)
	}
	res.Terminal = &TerminalCall{
		Call:       *call,
		ResultType: gentype.Void,
	}
	if desc.Terminal.Result != "" {
		res.Terminal.ResultType = gentype.Resolve(desc.Terminal.Result)
	}

	if res.Qualifier.Parallel {
		res.Call(0).Parallel = true
	}

	return res, nil
}

func decodeCall(cd *callDesc, prev *gentype.Type, terminal bool) (*Call, error) {
	if cd.Name == "" {
		return nil, fmt.Errorf("missing call name")
	}

	rng, err := decodeRange(cd.Range)
	if err != nil {
		return nil, fmt.Errorf("decode range: %w", err)
	}

	call := &Call{
		Name:       cd.Name,
		TypeBefore: prev,
		Package:    cd.Package,
		Range:      rng,
		Parallel:   cd.Parallel,
	}
	if call.Package == "" {
		call.Package = "java.util.stream"
	}
	for _, arg := range cd.Args {
		call.Args = append(call.Args, dsl.Code(arg))
	}

	switch {
	case cd.Kind != nil:
		if cd.Kind.IsTerminal() != terminal {
			return nil, fmt.Errorf("%w %s for this call position", ErrUnknownKind, *cd.Kind)
		}
		call.Kind = *cd.Kind
	case terminal:
		call.Kind = ClassifyTerminal(cd.Name)
	default:
		call.Kind = ClassifyIntermediate(cd.Name)
	}

	if cd.Before != "" {
		call.TypeBefore = gentype.Resolve(cd.Before)
	}
	call.TypeAfter = call.TypeBefore
	if cd.After != "" {
		call.TypeAfter = gentype.Resolve(cd.After)
	}

	return call, nil
}

func decodeRange(v []int) (Range, error) {
	switch len(v) {
	case 0:
		return Range{}, nil
	case 2:
		if v[0] > v[1] {
			return Range{}, fmt.Errorf("range start %d is after its end %d", v[0], v[1])
		}
		return Range{Start: v[0], End: v[1]}, nil
	default:
		return Range{}, fmt.Errorf("range must consist of two positions, got %d", len(v))
	}
}
