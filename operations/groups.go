package operations

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/gobuffalo/flect"
	"k8s.io/apimachinery/pkg/runtime/schema"

	oserrors "github.com/chouseknecht/openshift-restclient-go/errors"
)

// groupVersionToken matches the schema version marker carried in group
// names, e.g. "CoreV1", "AppsV1beta1". Groups whose names carry no marker
// are skipped during resolution unless designated as the generic fallback.
var groupVersionToken = regexp.MustCompile(`V\d(?:(?:alpha|beta)\d)?`)

// GroupNameFor renders a GroupVersion as an API group class name, e.g.
// {"", "v1"} -> "CoreV1", {"apps", "v1beta1"} -> "AppsV1beta1". Domain
// qualifiers are dropped: "route.openshift.io" -> "Route".
func GroupNameFor(gv schema.GroupVersion) string {
	group := gv.Group
	if group == "" {
		group = "core"
	}
	if i := strings.IndexByte(group, '.'); i >= 0 {
		group = group[:i]
	}
	version := strings.ToUpper(gv.Version[:1]) + gv.Version[1:]
	return flect.Pascalize(group) + version
}

type opKey struct {
	verb       Verb
	kind       string
	namespaced bool
}

// Group is the capability table of one API group: the set of operations it
// exposes, keyed by (verb, kind, namespaced).
type Group struct {
	name string

	mu  sync.RWMutex
	ops map[opKey]Operation
}

// NewGroup creates an empty capability table with the given name.
func NewGroup(name string) *Group {
	return &Group{
		name: name,
		ops:  make(map[opKey]Operation),
	}
}

// Name returns the group name.
func (g *Group) Name() string {
	return g.name
}

// Register adds an operation to the table.
func (g *Group) Register(op Operation) error {
	if op.Invoke == nil {
		return fmt.Errorf("operation %s must carry an invoker", op.MethodName())
	}
	if op.Kind == "" {
		return fmt.Errorf("operation for verb %q must specify a kind", op.Verb)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	key := opKey{verb: op.Verb, kind: op.Kind, namespaced: op.Namespaced}
	if _, exists := g.ops[key]; exists {
		return fmt.Errorf("operation %s is already registered in group %s", op.MethodName(), g.name)
	}
	g.ops[key] = op
	return nil
}

// Lookup returns the operation bound to (verb, kind, namespaced), if any.
func (g *Group) Lookup(verb Verb, kind string, namespaced bool) (Operation, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	op, exists := g.ops[opKey{verb: verb, kind: kind, namespaced: namespaced}]
	return op, exists
}

// GroupSet is the prioritized list of API groups an endpoint exposes:
// versioned groups in the order they were discovered, plus one designated
// generic fallback group consulted last.
type GroupSet struct {
	mu      sync.RWMutex
	groups  []*Group
	generic *Group
}

// NewGroupSet creates an empty group set.
func NewGroupSet() *GroupSet {
	return &GroupSet{}
}

// Add appends a versioned group. Resolution order follows insertion order.
func (s *GroupSet) Add(g *Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = append(s.groups, g)
}

// SetGeneric designates the fallback group consulted after every versioned
// group.
func (s *GroupSet) SetGeneric(g *Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generic = g
}

// Generic returns the designated fallback group, if any.
func (s *GroupSet) Generic() *Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generic
}

// Resolve walks the groups in priority order and returns the first
// operation bound to (verb, kind, namespaced). Versioned groups are
// consulted in insertion order, the generic group last. When no group
// exposes the operation the error carries the synthesized method name and,
// for cluster-scoped lookups, a hint that the namespaced flag may be
// wrong.
func (s *GroupSet) Resolve(verb Verb, kind string, namespaced bool) (Operation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.groups {
		if !groupVersionToken.MatchString(g.name) {
			continue
		}
		if op, exists := g.Lookup(verb, kind, namespaced); exists {
			return op, nil
		}
	}
	if s.generic != nil {
		if op, exists := s.generic.Lookup(verb, kind, namespaced); exists {
			return op, nil
		}
	}

	return Operation{}, &oserrors.OperationNotFoundError{
		Method:     MethodName(verb, kind, namespaced),
		Kind:       kind,
		Namespaced: namespaced,
	}
}
