package memory_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/chouseknecht/openshift-restclient-go/operations"
	"github.com/chouseknecht/openshift-restclient-go/registry"
	"github.com/chouseknecht/openshift-restclient-go/storage/memory"
	v1 "github.com/chouseknecht/openshift-restclient-go/types/v1"
)

func TestMemory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Memory Storage Suite")
}

var _ = Describe("Store", func() {
	var (
		ctx   context.Context
		store *memory.Store
		gr    = schema.GroupResource{Resource: "configmaps"}
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = memory.NewStore()
	})

	It("round-trips an object through create and get", func() {
		cm := v1.NewConfigMap("settings", "default")
		cm.Data = map[string]string{"debug": "false"}

		created, err := store.Create(ctx, gr, "configmaps", "default", cm)
		Expect(err).NotTo(HaveOccurred())

		got, err := store.Get(ctx, gr, "configmaps", "default", "settings")
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(created))
	})

	It("stamps server-assigned metadata on create", func() {
		created, err := store.Create(ctx, gr, "configmaps", "default", v1.NewConfigMap("settings", "default"))
		Expect(err).NotTo(HaveOccurred())

		cm := created.(*v1.ConfigMap)
		Expect(cm.ResourceVersion).NotTo(BeEmpty())
		Expect(cm.UID).NotTo(BeEmpty())
		Expect(cm.CreationTimestamp.IsZero()).To(BeFalse())
	})

	It("returns NotFound for a missing object", func() {
		_, err := store.Get(ctx, gr, "configmaps", "default", "missing")
		Expect(apierrors.IsNotFound(err)).To(BeTrue())
	})

	It("returns AlreadyExists for a duplicate create", func() {
		_, err := store.Create(ctx, gr, "configmaps", "default", v1.NewConfigMap("settings", "default"))
		Expect(err).NotTo(HaveOccurred())

		_, err = store.Create(ctx, gr, "configmaps", "default", v1.NewConfigMap("settings", "default"))
		Expect(apierrors.IsAlreadyExists(err)).To(BeTrue())
	})

	It("isolates stored state from caller mutation", func() {
		cm := v1.NewConfigMap("settings", "default")
		cm.Data = map[string]string{"debug": "false"}

		_, err := store.Create(ctx, gr, "configmaps", "default", cm)
		Expect(err).NotTo(HaveOccurred())

		cm.Data["debug"] = "true"

		got, err := store.Get(ctx, gr, "configmaps", "default", "settings")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.(*v1.ConfigMap).Data).To(HaveKeyWithValue("debug", "false"))
	})

	It("merges patches onto the stored object", func() {
		cm := v1.NewConfigMap("settings", "default")
		cm.Data = map[string]string{"debug": "false", "level": "info"}

		_, err := store.Create(ctx, gr, "configmaps", "default", cm)
		Expect(err).NotTo(HaveOccurred())

		patch := v1.NewConfigMap("settings", "default")
		patch.Data = map[string]string{"debug": "true"}

		patched, err := store.Patch(ctx, gr, "configmaps", "default", "settings", patch)
		Expect(err).NotTo(HaveOccurred())

		data := patched.(*v1.ConfigMap).Data
		Expect(data).To(HaveKeyWithValue("debug", "true"))
		Expect(data).To(HaveKeyWithValue("level", "info"))
	})

	It("bumps the resource version on every write", func() {
		created, err := store.Create(ctx, gr, "configmaps", "default", v1.NewConfigMap("settings", "default"))
		Expect(err).NotTo(HaveOccurred())

		patched, err := store.Patch(ctx, gr, "configmaps", "default", "settings", v1.NewConfigMap("settings", "default"))
		Expect(err).NotTo(HaveOccurred())

		before := created.(*v1.ConfigMap).ResourceVersion
		after := patched.(*v1.ConfigMap).ResourceVersion
		Expect(after).NotTo(Equal(before))
	})

	It("deletes stored objects", func() {
		_, err := store.Create(ctx, gr, "configmaps", "default", v1.NewConfigMap("settings", "default"))
		Expect(err).NotTo(HaveOccurred())

		Expect(store.Delete(ctx, gr, "configmaps", "default", "settings")).To(Succeed())

		_, err = store.Get(ctx, gr, "configmaps", "default", "settings")
		Expect(apierrors.IsNotFound(err)).To(BeTrue())

		err = store.Delete(ctx, gr, "configmaps", "default", "settings")
		Expect(apierrors.IsNotFound(err)).To(BeTrue())
	})

	It("honours context cancellation", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := store.Get(cancelled, gr, "configmaps", "default", "settings")
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("NewGroupSet", func() {
	var (
		ctx context.Context
		reg registry.Registry
		set *operations.GroupSet
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		reg, err = v1.NewRegistry()
		Expect(err).NotTo(HaveOccurred())

		set, err = memory.NewGroupSet(memory.NewStore(), reg)
		Expect(err).NotTo(HaveOccurred())
	})

	It("exposes all four verbs for every addressable kind", func() {
		for _, kind := range []string{"service", "config_map", "secret"} {
			for _, verb := range []operations.Verb{operations.VerbCreate, operations.VerbRead, operations.VerbPatch, operations.VerbDelete} {
				_, err := set.Resolve(verb, kind, true)
				Expect(err).NotTo(HaveOccurred(), "verb %s kind %s", verb, kind)
			}
		}
		_, err := set.Resolve(operations.VerbRead, "namespace", false)
		Expect(err).NotTo(HaveOccurred())
	})

	It("activates phased kinds on create", func() {
		op, err := set.Resolve(operations.VerbCreate, "namespace", false)
		Expect(err).NotTo(HaveOccurred())

		created, err := op.Invoke(ctx, operations.Request{Object: v1.NewNamespace("prod")})
		Expect(err).NotTo(HaveOccurred())
		Expect(created.(*v1.Namespace).Status.Phase).To(Equal(corev1.NamespaceActive))
	})

	It("does not invent a phase for phase-less kinds", func() {
		op, err := set.Resolve(operations.VerbCreate, "config_map", true)
		Expect(err).NotTo(HaveOccurred())

		created, err := op.Invoke(ctx, operations.Request{
			Namespace: "default",
			Object:    v1.NewConfigMap("settings", "default"),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(created).To(BeAssignableToTypeOf(&v1.ConfigMap{}))
	})

	It("marks delete operations as accepting delete options", func() {
		op, err := set.Resolve(operations.VerbDelete, "service", true)
		Expect(err).NotTo(HaveOccurred())
		Expect(op.AcceptsDeleteOptions).To(BeTrue())
	})
})
