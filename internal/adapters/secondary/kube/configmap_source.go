package kube

import (
	"context"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"fraud-scoring-service/internal/core/domain"
)

// ConfigMapScheme prefixes artifact paths stored in a ConfigMap:
// configmap://<namespace>/<name>/<key>
const ConfigMapScheme = "configmap://"

type configMapRef struct {
	namespace string
	name      string
	key       string
}

func parseConfigMapPath(path string) (configMapRef, error) {
	rest, ok := strings.CutPrefix(path, ConfigMapScheme)
	if !ok {
		return configMapRef{}, fmt.Errorf("%w: %q is not a %s path", domain.ErrArtifactNotFound, path, ConfigMapScheme)
	}
	parts := strings.SplitN(rest, "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return configMapRef{}, fmt.Errorf("%w: %q must look like %s<namespace>/<name>/<key>", domain.ErrArtifactNotFound, path, ConfigMapScheme)
	}
	return configMapRef{namespace: parts[0], name: parts[1], key: parts[2]}, nil
}

// ConfigMapSource reads artifacts stored under a key of a ConfigMap.
// binaryData wins over data when both hold the key.
type ConfigMapSource struct {
	client kubernetes.Interface
}

func NewConfigMapSource(client kubernetes.Interface) *ConfigMapSource {
	return &ConfigMapSource{client: client}
}

func (s *ConfigMapSource) Exists(ctx context.Context, path string) (bool, error) {
	ref, err := parseConfigMapPath(path)
	if err != nil {
		return false, err
	}
	cm, err := s.get(ctx, ref)
	if err != nil {
		if apierrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	_, ok := lookupKey(cm, ref.key)
	return ok, nil
}

func (s *ConfigMapSource) Read(ctx context.Context, path string) ([]byte, error) {
	ref, err := parseConfigMapPath(path)
	if err != nil {
		return nil, err
	}
	cm, err := s.get(ctx, ref)
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, path)
		}
		return nil, err
	}
	data, ok := lookupKey(cm, ref.key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, path)
	}
	return data, nil
}

func (s *ConfigMapSource) get(ctx context.Context, ref configMapRef) (*corev1.ConfigMap, error) {
	cm, err := s.client.CoreV1().ConfigMaps(ref.namespace).Get(ctx, ref.name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("get configmap %s/%s: %w", ref.namespace, ref.name, err)
	}
	return cm, nil
}

func lookupKey(cm *corev1.ConfigMap, key string) ([]byte, bool) {
	if data, ok := cm.BinaryData[key]; ok {
		return data, true
	}
	if data, ok := cm.Data[key]; ok {
		return []byte(data), true
	}
	return nil, false
}
