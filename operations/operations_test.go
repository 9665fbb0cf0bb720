package operations_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"

	oserrors "github.com/chouseknecht/openshift-restclient-go/errors"
	"github.com/chouseknecht/openshift-restclient-go/operations"
)

func TestOperations(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Operations Suite")
}

func noop(_ context.Context, _ operations.Request) (runtime.Object, error) {
	return nil, nil
}

var _ = Describe("MethodName", func() {
	DescribeTable("synthesizes wire-style names",
		func(verb operations.Verb, kind string, namespaced bool, expected string) {
			Expect(operations.MethodName(verb, kind, namespaced)).To(Equal(expected))
		},
		Entry("namespaced read", operations.VerbRead, "service", true, "read_namespaced_service"),
		Entry("cluster-scoped read", operations.VerbRead, "namespace", false, "read_namespace"),
		Entry("namespaced create", operations.VerbCreate, "config_map", true, "create_namespaced_config_map"),
		Entry("cluster-scoped delete", operations.VerbDelete, "namespace", false, "delete_namespace"),
	)
})

var _ = Describe("GroupNameFor", func() {
	DescribeTable("renders group class names",
		func(group, version, expected string) {
			gv := schema.GroupVersion{Group: group, Version: version}
			Expect(operations.GroupNameFor(gv)).To(Equal(expected))
		},
		Entry("legacy core group", "", "v1", "CoreV1"),
		Entry("named group", "apps", "v1beta1", "AppsV1beta1"),
		Entry("domain-qualified group", "route.openshift.io", "v1", "RouteV1"),
		Entry("batch group", "batch", "v2alpha1", "BatchV2alpha1"),
	)
})

var _ = Describe("Group", func() {
	var group *operations.Group

	BeforeEach(func() {
		group = operations.NewGroup("CoreV1")
	})

	It("registers and looks up operations by verb, kind and scope", func() {
		op := operations.Operation{
			Verb:       operations.VerbRead,
			Kind:       "service",
			Namespaced: true,
			Invoke:     noop,
		}
		Expect(group.Register(op)).To(Succeed())

		found, exists := group.Lookup(operations.VerbRead, "service", true)
		Expect(exists).To(BeTrue())
		Expect(found.MethodName()).To(Equal("read_namespaced_service"))

		_, exists = group.Lookup(operations.VerbRead, "service", false)
		Expect(exists).To(BeFalse())
	})

	It("rejects an operation without an invoker", func() {
		op := operations.Operation{Verb: operations.VerbRead, Kind: "service"}
		Expect(group.Register(op)).NotTo(Succeed())
	})

	It("rejects duplicate registration", func() {
		op := operations.Operation{Verb: operations.VerbRead, Kind: "service", Invoke: noop}
		Expect(group.Register(op)).To(Succeed())
		Expect(group.Register(op)).NotTo(Succeed())
	})
})

var _ = Describe("GroupSet", func() {
	var set *operations.GroupSet

	register := func(g *operations.Group, kind string, marker string) {
		op := operations.Operation{
			Verb:       operations.VerbRead,
			Kind:       kind,
			Namespaced: true,
			Invoke: func(_ context.Context, _ operations.Request) (runtime.Object, error) {
				return nil, &oserrors.APIRequestError{Message: marker}
			},
		}
		ExpectWithOffset(1, g.Register(op)).To(Succeed())
	}

	BeforeEach(func() {
		set = operations.NewGroupSet()
	})

	It("resolves from versioned groups in insertion order", func() {
		first := operations.NewGroup("CoreV1")
		second := operations.NewGroup("AppsV1")
		register(first, "widget", "from-core")
		register(second, "widget", "from-apps")
		set.Add(first)
		set.Add(second)

		op, err := set.Resolve(operations.VerbRead, "widget", true)
		Expect(err).NotTo(HaveOccurred())

		_, invokeErr := op.Invoke(context.Background(), operations.Request{})
		Expect(invokeErr).To(MatchError(ContainSubstring("from-core")))
	})

	It("skips groups whose names carry no version marker", func() {
		unversioned := operations.NewGroup("Api")
		versioned := operations.NewGroup("CoreV1")
		register(unversioned, "widget", "from-api")
		register(versioned, "widget", "from-core")
		set.Add(unversioned)
		set.Add(versioned)

		op, err := set.Resolve(operations.VerbRead, "widget", true)
		Expect(err).NotTo(HaveOccurred())

		_, invokeErr := op.Invoke(context.Background(), operations.Request{})
		Expect(invokeErr).To(MatchError(ContainSubstring("from-core")))
	})

	It("falls back to the generic group last", func() {
		versioned := operations.NewGroup("CoreV1")
		generic := operations.NewGroup("Api")
		register(generic, "widget", "from-generic")
		set.Add(versioned)
		set.SetGeneric(generic)

		op, err := set.Resolve(operations.VerbRead, "widget", true)
		Expect(err).NotTo(HaveOccurred())

		_, invokeErr := op.Invoke(context.Background(), operations.Request{})
		Expect(invokeErr).To(MatchError(ContainSubstring("from-generic")))
	})

	It("reports the synthesized method name when nothing matches", func() {
		_, err := set.Resolve(operations.VerbRead, "widget", true)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("read_namespaced_widget"))
		Expect(err.Error()).NotTo(ContainSubstring("namespace?"))
	})

	It("hints at a missing namespace for cluster-scoped misses", func() {
		_, err := set.Resolve(operations.VerbRead, "widget", false)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("Did you forget to include the namespace?"))
	})
})
