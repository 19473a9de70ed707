package cli

import (
	"io"
	"math"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/foliar/group"
	"github.com/katalvlaran/foliar/search"
)

// ErrUnknownFamily indicates a group family with no builder.
var ErrUnknownFamily = errors.New("unknown group family")

type family struct {
	arity int
	build func(args []int) ([]group.Matrix, []string)
}

// families are the groups that can be named on the command line and
// rebuilt from a proof's name and arguments.
var families = map[string]family{
	"cyclic": {arity: 1, build: func(args []int) ([]group.Matrix, []string) {
		n := args[0]
		c, s := math.Cos(2*math.Pi/float64(n)), math.Sin(2*math.Pi/float64(n))
		r := group.Matrix{{complex(c, 0), complex(-s, 0)}, {complex(s, 0), complex(c, 0)}}

		return []group.Matrix{r}, []string{strings.Repeat("a", n)}
	}},
	"quaternion": {build: func([]int) ([]group.Matrix, []string) {
		return []group.Matrix{{{1i, 0}, {0, -1i}}, {{0, 1}, {-1, 0}}}, []string{"aaBB", "baBa"}
	}},
	"sanov": {build: func([]int) ([]group.Matrix, []string) {
		return []group.Matrix{{{1, 2}, {0, 1}}, {{1, 0}, {2, 1}}}, nil
	}},
}

func familyNames() []string {
	out := make([]string, 0, len(families))
	for name := range families {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// namedGroup builds a member of a known family.
func namedGroup(name string, args []int) (search.NamedGroup, error) {
	f, ok := families[name]
	if !ok {
		return search.NamedGroup{}, errors.Wrapf(ErrUnknownFamily, "%q (known: %s)", name, strings.Join(familyNames(), ", "))
	}
	if len(args) != f.arity {
		return search.NamedGroup{}, errors.Newf("family %s takes %d arguments, got %d", name, f.arity, len(args))
	}
	if f.arity > 0 && args[0] < 1 {
		return search.NamedGroup{}, errors.Newf("family %s needs a positive argument, got %d", name, args[0])
	}
	gens, rels := f.build(args)

	return search.NamedGroup{Name: name, Args: append([]int(nil), args...), Gens: gens, Relators: rels}, nil
}

// groupSpec is one entry of a groups file: a family member, or explicit
// generators with real and imaginary parts.
type groupSpec struct {
	Name     string   `yaml:"name"`
	Family   string   `yaml:"family"`
	Args     []int    `yaml:"args"`
	Relators []string `yaml:"relators"`
	Gens     []struct {
		Re [2][2]float64 `yaml:"re"`
		Im [2][2]float64 `yaml:"im"`
	} `yaml:"gens"`
}

func loadGroups(r io.Reader) ([]search.NamedGroup, error) {
	var specs []groupSpec
	if err := yaml.NewDecoder(r).Decode(&specs); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode groups")
	}
	out := make([]search.NamedGroup, 0, len(specs))
	for i, s := range specs {
		if s.Family != "" {
			ng, err := namedGroup(s.Family, s.Args)
			if err != nil {
				return nil, errors.Wrapf(err, "group %d", i)
			}
			if s.Name != "" {
				ng.Name = s.Name
			}
			out = append(out, ng)

			continue
		}
		if s.Name == "" {
			return nil, errors.Newf("group %d has neither a family nor a name", i)
		}
		ng := search.NamedGroup{Name: s.Name, Args: s.Args, Relators: s.Relators}
		for _, g := range s.Gens {
			var m group.Matrix
			for r := 0; r < 2; r++ {
				for c := 0; c < 2; c++ {
					m[r][c] = complex(g.Re[r][c], g.Im[r][c])
				}
			}
			ng.Gens = append(ng.Gens, m)
		}
		out = append(out, ng)
	}

	return out, nil
}
