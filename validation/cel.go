package validation

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"k8s.io/apimachinery/pkg/runtime"
)

// celValidator evaluates a fixed set of CEL rules against objects using
// the google/cel-go library. Compiled programs are cached per expression.
type celValidator struct {
	env   *cel.Env
	rules []Rule

	mu    sync.RWMutex
	cache map[string]cel.Program
}

// NewCELValidator creates a validator that enforces the given rules. The
// CEL environment binds `self` to the object's mapping form.
func NewCELValidator(rules ...Rule) (Validator, error) {
	env, err := cel.NewEnv(
		cel.Variable("self", cel.DynType),
		cel.HomogeneousAggregateLiterals(),
		cel.EagerlyValidateDeclarations(true),
		cel.DefaultUTCTimeZone(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return &celValidator{
		env:   env,
		rules: rules,
		cache: make(map[string]cel.Program),
	}, nil
}

// Validate evaluates every rule against obj and fails on the first rule
// that does not hold.
func (c *celValidator) Validate(ctx context.Context, obj runtime.Object) error {
	if obj == nil {
		return fmt.Errorf("cannot validate a nil object")
	}

	self, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return fmt.Errorf("failed to convert object for validation: %w", err)
	}

	for _, rule := range c.rules {
		program, err := c.compile(rule.Expression)
		if err != nil {
			return err
		}

		result, _, err := program.Eval(map[string]interface{}{"self": self})
		if err != nil {
			return fmt.Errorf("CEL evaluation failed for %q: %w", rule.Expression, err)
		}
		if result != types.True {
			if rule.Message != "" {
				return fmt.Errorf("validation failed: %s", rule.Message)
			}
			return fmt.Errorf("CEL expression evaluated to false: %s", rule.Expression)
		}
	}
	return nil
}

// compile parses, checks and caches the program for an expression.
func (c *celValidator) compile(expression string) (cel.Program, error) {
	if expression == "" {
		return nil, fmt.Errorf("CEL expression cannot be empty")
	}

	c.mu.RLock()
	if cached, exists := c.cache[expression]; exists {
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check cache after acquiring the write lock.
	if cached, exists := c.cache[expression]; exists {
		return cached, nil
	}

	ast, issues := c.env.Parse(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to parse CEL expression %q: %w", expression, issues.Err())
	}
	checked, issues := c.env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to type-check CEL expression %q: %w", expression, issues.Err())
	}
	program, err := c.env.Program(checked)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program for %q: %w", expression, err)
	}

	c.cache[expression] = program
	return program, nil
}

var _ Validator = (*celValidator)(nil)
