// Package config builds client connection settings from an explicit host,
// a kubeconfig file, or the ambient default loading rules, in that order
// of precedence.
package config

import (
	"os"

	"github.com/pkg/errors"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Settings collects the connection parameters a caller may supply. Zero
// values fall through to the default loading rules.
type Settings struct {
	// Kubeconfig is the path to a kubeconfig file.
	Kubeconfig string

	// Context selects a context within the kubeconfig. Empty selects the
	// file's current context.
	Context string

	// Host is an explicit API endpoint. When set, the kubeconfig is
	// bypassed entirely and the credentials below apply.
	Host string

	// APIKey is a bearer token used with Host.
	APIKey string

	// Username and Password are basic-auth credentials used with Host.
	Username string
	Password string

	// Insecure skips server certificate verification.
	Insecure bool
}

// Load resolves the settings into a rest.Config. An explicit Host wins;
// otherwise the named kubeconfig is loaded, and failing that the default
// loading rules (KUBECONFIG, ~/.kube/config, in-cluster) apply.
func Load(s Settings) (*rest.Config, error) {
	if s.Host != "" {
		cfg := &rest.Config{
			Host:        s.Host,
			BearerToken: s.APIKey,
			Username:    s.Username,
			Password:    s.Password,
		}
		cfg.TLSClientConfig.Insecure = s.Insecure
		return cfg, nil
	}

	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if s.Kubeconfig != "" {
		if _, err := os.Stat(s.Kubeconfig); err != nil {
			return nil, errors.Wrapf(err, "Failed to access %s. Does the file exist?", s.Kubeconfig)
		}
		rules = &clientcmd.ClientConfigLoadingRules{ExplicitPath: s.Kubeconfig}
	}

	overrides := &clientcmd.ConfigOverrides{CurrentContext: s.Context}
	cfg, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides).ClientConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load client configuration")
	}
	if s.Insecure {
		cfg.TLSClientConfig.Insecure = s.Insecure
		cfg.TLSClientConfig.CAFile = ""
		cfg.TLSClientConfig.CAData = nil
	}
	return cfg, nil
}
