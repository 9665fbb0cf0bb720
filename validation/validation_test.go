package validation_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/chouseknecht/openshift-restclient-go/types/v1"
	"github.com/chouseknecht/openshift-restclient-go/validation"
)

func TestValidation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation Suite")
}

var _ = Describe("CEL Validator", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("passes an object that satisfies every rule", func() {
		validator, err := validation.NewCELValidator(
			validation.Rule{Expression: `self.metadata.name != ""`},
			validation.Rule{Expression: `self.kind == "ConfigMap"`},
		)
		Expect(err).NotTo(HaveOccurred())

		Expect(validator.Validate(ctx, v1.NewConfigMap("settings", "default"))).To(Succeed())
	})

	It("reports the rule message on failure", func() {
		validator, err := validation.NewCELValidator(
			validation.Rule{
				Expression: `has(self.metadata.labels) && "app" in self.metadata.labels`,
				Message:    "objects must carry an app label",
			},
		)
		Expect(err).NotTo(HaveOccurred())

		err = validator.Validate(ctx, v1.NewConfigMap("settings", "default"))
		Expect(err).To(MatchError(ContainSubstring("objects must carry an app label")))
	})

	It("reports the expression when no message is set", func() {
		validator, err := validation.NewCELValidator(
			validation.Rule{Expression: `self.metadata.name == "other"`},
		)
		Expect(err).NotTo(HaveOccurred())

		err = validator.Validate(ctx, v1.NewConfigMap("settings", "default"))
		Expect(err).To(MatchError(ContainSubstring(`self.metadata.name == "other"`)))
	})

	It("rejects an invalid expression", func() {
		validator, err := validation.NewCELValidator(
			validation.Rule{Expression: `self.metadata.name ==`},
		)
		Expect(err).NotTo(HaveOccurred())

		err = validator.Validate(ctx, v1.NewConfigMap("settings", "default"))
		Expect(err).To(MatchError(ContainSubstring("failed to parse")))
	})

	It("rejects an empty expression", func() {
		validator, err := validation.NewCELValidator(validation.Rule{})
		Expect(err).NotTo(HaveOccurred())

		err = validator.Validate(ctx, v1.NewConfigMap("settings", "default"))
		Expect(err).To(HaveOccurred())
	})

	It("rejects a nil object", func() {
		validator, err := validation.NewCELValidator(
			validation.Rule{Expression: `true`},
		)
		Expect(err).NotTo(HaveOccurred())

		Expect(validator.Validate(ctx, nil)).NotTo(Succeed())
	})
})
