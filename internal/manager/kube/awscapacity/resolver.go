// Package awscapacity resolves the attached GPU count of an EC2 instance
// type via DescribeInstanceTypes; vCPUs and memory are not resolved. It is
// deliberately capacity-only: nothing here calls the AWS Pricing API or
// looks at spot/on-demand cost, since a cost-aware scorer is out of scope.
// It exists as a fallback for Kubernetes nodes whose status.allocatable
// doesn't carry an extended resource the scheduler core needs (most
// commonly GPU count on a node that hasn't finished device-plugin
// registration yet).
package awscapacity

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"k8s.io/klog/v2"

	"github.com/guimove/placer/internal/fixedpoint"
)

const (
	credentialCheckTimeout = 3 * time.Second
	cacheTTL               = 24 * time.Hour
)

// gpuResourceName is the only extended resource this resolver currently
// knows how to derive from EC2 instance metadata.
const gpuResourceName = "nvidia.com/gpu"

type ec2API interface {
	DescribeInstanceTypes(ctx context.Context, params *ec2.DescribeInstanceTypesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstanceTypesOutput, error)
}

// Resolver answers "how much of resourceName does instanceType carry".
type Resolver struct {
	client ec2API
	cache  *instanceTypeCache
}

// New creates a Resolver using the default AWS SDK credential chain. IMDS
// is disabled so resolution never blocks waiting on metadata timeouts when
// running outside EC2. cacheDir may be empty to disable on-disk caching.
func New(ctx context.Context, region, cacheDir string) (*Resolver, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithEC2IMDSClientEnableState(imds.ClientDisabled),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	credCtx, cancel := context.WithTimeout(ctx, credentialCheckTimeout)
	defer cancel()
	if _, err := cfg.Credentials.Retrieve(credCtx); err != nil {
		return nil, fmt.Errorf("aws credentials unavailable: %w", err)
	}

	var cache *instanceTypeCache
	if cacheDir != "" {
		cache = newInstanceTypeCache(cacheDir)
	}

	return &Resolver{client: ec2.NewFromConfig(cfg), cache: cache}, nil
}

// CustomCapacity returns the amount of resourceName instanceType carries.
// It only resolves gpuResourceName today; any other name reports not-found
// rather than guessing.
func (r *Resolver) CustomCapacity(ctx context.Context, instanceType, resourceName string) (fixedpoint.Value, bool) {
	if resourceName != gpuResourceName || instanceType == "" {
		return 0, false
	}

	gpus, err := r.gpuCount(ctx, instanceType)
	if err != nil {
		klog.Errorf("awscapacity: resolving GPU count for %s: %v", instanceType, err)
		return 0, false
	}
	return fixedpoint.FromInt64(int64(gpus)), true
}

func (r *Resolver) gpuCount(ctx context.Context, instanceType string) (int32, error) {
	if r.cache != nil {
		if count, ok := r.cache.get(gpuResourceName, instanceType); ok {
			return count, nil
		}
	}

	out, err := r.client.DescribeInstanceTypes(ctx, &ec2.DescribeInstanceTypesInput{
		InstanceTypes: []ec2types.InstanceType{ec2types.InstanceType(instanceType)},
	})
	if err != nil {
		return 0, fmt.Errorf("describing instance type %s: %w", instanceType, err)
	}
	if len(out.InstanceTypes) == 0 {
		return 0, fmt.Errorf("no such instance type: %s", instanceType)
	}

	var count int32
	info := out.InstanceTypes[0]
	if info.GpuInfo != nil {
		for _, g := range info.GpuInfo.Gpus {
			if g.Count != nil {
				count += *g.Count
			}
		}
	}

	if r.cache != nil {
		if err := r.cache.set(gpuResourceName, instanceType, count); err != nil {
			klog.Errorf("awscapacity: caching GPU count for %s: %v", instanceType, err)
		}
	}

	return count, nil
}

// instanceTypeCache persists resolved extended-resource counts to disk, keyed
// by the (resourceName, instanceType) pair that produced them — the only
// shape this resolver ever caches, unlike a generic key/value file cache.
// Entries older than cacheTTL are treated as a miss.
type instanceTypeCache struct {
	dir string
}

func newInstanceTypeCache(dir string) *instanceTypeCache {
	return &instanceTypeCache{dir: dir}
}

func (c *instanceTypeCache) get(resourceName, instanceType string) (int32, bool) {
	info, err := os.Stat(c.path(resourceName, instanceType))
	if err != nil || time.Since(info.ModTime()) > cacheTTL {
		return 0, false
	}

	data, err := os.ReadFile(c.path(resourceName, instanceType))
	if err != nil {
		return 0, false
	}

	var count int32
	if err := json.Unmarshal(data, &count); err != nil {
		return 0, false
	}
	return count, true
}

func (c *instanceTypeCache) set(resourceName, instanceType string, count int32) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.Marshal(count)
	if err != nil {
		return fmt.Errorf("marshaling gpu count: %w", err)
	}

	if err := os.WriteFile(c.path(resourceName, instanceType), data, 0644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

// path turns a (resourceName, instanceType) pair into a filesystem-safe
// filename; resourceName is typically slash-qualified (nvidia.com/gpu).
func (c *instanceTypeCache) path(resourceName, instanceType string) string {
	safeResource := strings.NewReplacer("/", "_", ":", "_").Replace(resourceName)
	return filepath.Join(c.dir, fmt.Sprintf("%s-%s.json", safeResource, instanceType))
}
