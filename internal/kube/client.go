package kube

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/guimove/placer/internal/config"
)

// NewClient creates a Kubernetes clientset for the manager backend, resolving
// credentials from cfg in the following order:
// 1. cfg.Kubeconfig (--kubeconfig flag)
// 2. KUBECONFIG environment variable
// 3. ~/.kube/config default, if the file exists
// 4. In-cluster config (when running as a pod)
//
// cfg.Context overrides the kubeconfig's current-context when set.
// Unlike a generic client constructor, this is the only credential path the
// kube ResourceManager needs: placer never port-forwards or otherwise reuses
// the underlying rest.Config once the clientset exists.
func NewClient(cfg config.KubernetesConfig) (*kubernetes.Clientset, error) {
	restConfig, err := buildConfig(cfg.Kubeconfig, cfg.Context)
	if err != nil {
		return nil, fmt.Errorf("building kubernetes config for context %q: %w", cfg.Context, err)
	}

	client, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("creating kubernetes client: %w", err)
	}

	return client, nil
}

func buildConfig(kubeconfig, context string) (*rest.Config, error) {
	kubeconfigPath := kubeconfig
	if kubeconfigPath == "" {
		kubeconfigPath = os.Getenv("KUBECONFIG")
	}
	if kubeconfigPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			defaultPath := filepath.Join(home, ".kube", "config")
			if _, err := os.Stat(defaultPath); err == nil {
				kubeconfigPath = defaultPath
			}
		}
	}

	if kubeconfigPath != "" {
		rules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfigPath}
		overrides := &clientcmd.ConfigOverrides{}
		if context != "" {
			overrides.CurrentContext = context
		}

		clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides)
		return clientConfig.ClientConfig()
	}

	restConfig, err := rest.InClusterConfig()
	if err != nil {
		return nil, fmt.Errorf("no kubeconfig found and not running in-cluster: %w", err)
	}
	return restConfig, nil
}
