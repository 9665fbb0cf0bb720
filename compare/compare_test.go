package compare_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/chouseknecht/openshift-restclient-go/compare"
	v1 "github.com/chouseknecht/openshift-restclient-go/types/v1"
)

func TestCompare(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Compare Suite")
}

var _ = Describe("Objects", func() {
	newService := func() *v1.Service {
		svc := v1.NewService("web", "default")
		svc.Labels = map[string]string{"app": "web", "tier": "frontend"}
		svc.Spec.Selector = map[string]string{"app": "web"}
		svc.Spec.Ports = []corev1.ServicePort{
			{Name: "http", Port: 80, TargetPort: intstr.FromInt32(8080)},
		}
		return svc
	}

	It("reports an object equal to itself", func() {
		svc := newService()
		equal, err := compare.Objects(svc, svc.DeepCopy())
		Expect(err).NotTo(HaveOccurred())
		Expect(equal).To(BeTrue())
	})

	It("treats two nils as equal", func() {
		equal, err := compare.Objects(nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(equal).To(BeTrue())
	})

	It("treats nil against non-nil as unequal", func() {
		equal, err := compare.Objects(newService(), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(equal).To(BeFalse())

		equal, err = compare.Objects(nil, newService())
		Expect(err).NotTo(HaveOccurred())
		Expect(equal).To(BeFalse())
	})

	It("reports objects of different concrete types unequal", func() {
		equal, err := compare.Objects(newService(), v1.NewConfigMap("web", "default"))
		Expect(err).NotTo(HaveOccurred())
		Expect(equal).To(BeFalse())
	})

	It("ignores fields present only on the right side", func() {
		desired := newService()
		observed := newService()
		observed.ResourceVersion = "4711"
		observed.Spec.ClusterIP = "10.0.0.1"

		equal, err := compare.Objects(desired, observed)
		Expect(err).NotTo(HaveOccurred())
		Expect(equal).To(BeTrue())
	})

	It("detects a changed scalar", func() {
		desired := newService()
		observed := newService()
		observed.Labels["tier"] = "backend"

		equal, err := compare.Objects(desired, observed)
		Expect(err).NotTo(HaveOccurred())
		Expect(equal).To(BeFalse())
	})

	It("detects a missing key", func() {
		desired := newService()
		observed := newService()
		delete(observed.Labels, "tier")

		equal, err := compare.Objects(desired, observed)
		Expect(err).NotTo(HaveOccurred())
		Expect(equal).To(BeFalse())
	})
})

var _ = Describe("Mappings", func() {
	It("treats two empty maps as equal", func() {
		Expect(compare.Mappings(map[string]interface{}{}, map[string]interface{}{})).To(BeTrue())
	})

	It("treats empty against non-empty as unequal", func() {
		full := map[string]interface{}{"a": "b"}
		Expect(compare.Mappings(map[string]interface{}{}, full)).To(BeFalse())
		Expect(compare.Mappings(full, map[string]interface{}{})).To(BeFalse())
	})

	It("requires every left key on the right", func() {
		left := map[string]interface{}{"a": "1", "b": "2"}
		right := map[string]interface{}{"a": "1"}
		Expect(compare.Mappings(left, right)).To(BeFalse())
	})

	It("ignores extra right keys", func() {
		left := map[string]interface{}{"a": "1"}
		right := map[string]interface{}{"a": "1", "b": "2"}
		Expect(compare.Mappings(left, right)).To(BeTrue())
	})

	It("recurses into nested maps", func() {
		left := map[string]interface{}{
			"spec": map[string]interface{}{"replicas": int64(3)},
		}
		right := map[string]interface{}{
			"spec": map[string]interface{}{"replicas": int64(2)},
		}
		Expect(compare.Mappings(left, right)).To(BeFalse())
	})
})

var _ = Describe("Collections", func() {
	It("compares scalar lists as sets", func() {
		left := []interface{}{"a", "b", "c"}
		right := []interface{}{"c", "b", "a"}
		Expect(compare.Collections(left, right)).To(BeTrue())
	})

	It("ignores scalar duplicates", func() {
		// Set semantics: multiplicity does not count.
		left := []interface{}{"a", "a", "b"}
		right := []interface{}{"a", "b"}
		Expect(compare.Collections(left, right)).To(BeTrue())
	})

	It("detects a scalar present on one side only", func() {
		left := []interface{}{"a", "b"}
		right := []interface{}{"a", "c"}
		Expect(compare.Collections(left, right)).To(BeFalse())
	})

	It("requires every left map element on the right", func() {
		left := []interface{}{
			map[string]interface{}{"name": "http", "port": int64(80)},
		}
		right := []interface{}{
			map[string]interface{}{"name": "https", "port": int64(443)},
		}
		Expect(compare.Collections(left, right)).To(BeFalse())
	})

	It("accepts extra map elements on the right", func() {
		left := []interface{}{
			map[string]interface{}{"name": "http", "port": int64(80)},
		}
		right := []interface{}{
			map[string]interface{}{"name": "http", "port": int64(80)},
			map[string]interface{}{"name": "https", "port": int64(443)},
		}
		Expect(compare.Collections(left, right)).To(BeTrue())
	})
})
