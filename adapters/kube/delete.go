package kube

import (
	"context"
	"errors"
	"fmt"

	"github.com/slipway-dev/slipway/internal/logging"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	meta "k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/restmapper"
)

// DeleteOptions controls deletion behavior for DeleteObjects.
type DeleteOptions struct {
	// DefaultNamespace is used when a namespaced resource omits metadata.namespace.
	DefaultNamespace string
	// Propagation selects the deletion propagation policy. Defaults to Background.
	Propagation metav1.DeletionPropagation
	// IgnoreErrors continues deletion across objects when errors occur.
	IgnoreErrors bool
}

func (o *DeleteOptions) defaults() {
	if o.Propagation == "" {
		o.Propagation = metav1.DeletePropagationBackground
	}
}

// DeleteObjects deletes the given typed objects by name. Objects are deleted
// in reverse of the given order so workloads go away before the Services that
// front them. Missing objects are not an error.
// Returns the count of successfully deleted objects and a joined error if any.
func (c *Client) DeleteObjects(ctx context.Context, objs []runtime.Object, opts *DeleteOptions) (deleted int, err error) {
	if c == nil || c.RESTConfig == nil {
		return 0, fmt.Errorf("kube client is not initialized")
	}

	logger := logging.FromContext(ctx)
	msgSym := "KubeClient:DeleteObjects"
	logger.Info(ctx, msgSym+"/s")
	defer func() {
		if err == nil {
			logger.Info(ctx, msgSym+"/eok", "deleted", deleted)
		} else {
			logger.Info(ctx, msgSym+"/efail", "deleted", deleted, "err", err)
		}
	}()

	if opts == nil {
		opts = &DeleteOptions{IgnoreErrors: true}
	}
	opts.defaults()

	dc, err := discovery.NewDiscoveryClientForConfig(c.RESTConfig)
	if err != nil {
		return 0, fmt.Errorf("create discovery client: %w", err)
	}
	mapper := restmapper.NewDeferredDiscoveryRESTMapper(memory.NewMemCacheClient(dc))
	dy, err := dynamic.NewForConfig(c.RESTConfig)
	if err != nil {
		return 0, fmt.Errorf("create dynamic client: %w", err)
	}

	var errs []error
	for i := len(objs) - 1; i >= 0; i-- {
		obj := objs[i]
		if obj == nil {
			continue
		}
		m, cerr := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
		if cerr != nil {
			return deleted, fmt.Errorf("to unstructured: %w", cerr)
		}
		u := &unstructured.Unstructured{Object: m}
		if u.GetKind() == "" || u.GetAPIVersion() == "" {
			continue
		}
		gvk := schema.FromAPIVersionAndKind(u.GetAPIVersion(), u.GetKind())
		mapping, merr := mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
		if merr != nil {
			errs = append(errs, fmt.Errorf("rest mapping %s: %w", gvk.String(), merr))
			if !opts.IgnoreErrors {
				return deleted, errors.Join(errs...)
			}
			continue
		}
		if mapping.Scope.Name() == meta.RESTScopeNameNamespace && u.GetNamespace() == "" {
			ns := opts.DefaultNamespace
			if ns == "" {
				ns = "default"
			}
			u.SetNamespace(ns)
		}
		if u.GetName() == "" {
			errs = append(errs, fmt.Errorf("object %s missing metadata.name", gvk.String()))
			if !opts.IgnoreErrors {
				return deleted, errors.Join(errs...)
			}
			continue
		}

		olog := logger.With("ns", u.GetNamespace(), "kind", u.GetKind(), "name", u.GetName())
		ri := resourceInterfaceFor(dy, mapping.Resource, u.GetNamespace())
		delOpts := metav1.DeleteOptions{PropagationPolicy: &opts.Propagation}
		if derr := ri.Delete(ctx, u.GetName(), delOpts); derr != nil {
			if apierrors.IsNotFound(derr) {
				olog.Info(ctx, "KubeClient:Delete/absent")
				continue
			}
			olog.Info(ctx, "KubeClient:Delete/efail", "err", derr)
			errs = append(errs, fmt.Errorf("delete %s %s/%s: %w", u.GetKind(), u.GetNamespace(), u.GetName(), derr))
			if !opts.IgnoreErrors {
				return deleted, errors.Join(errs...)
			}
			continue
		}
		olog.Info(ctx, "KubeClient:Delete/eok")
		deleted++
	}

	if len(errs) > 0 {
		return deleted, errors.Join(errs...)
	}
	return deleted, nil
}
