package manifestset

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/slipway-dev/slipway/adapters/kube"
	"github.com/slipway-dev/slipway/domain/model"
	"github.com/slipway-dev/slipway/internal/logging"
	"github.com/slipway-dev/slipway/internal/naming"
	"github.com/slipway-dev/slipway/manifest"
)

// ApplyInput selects the descriptor set to submit to the cluster. With no
// path and no revision ID, the latest stored revision is applied.
type ApplyInput struct {
	Path       string
	RevisionID string
	// Namespace fills objects that omit metadata.namespace during SSA.
	Namespace string
	// FieldManager overrides the server-side apply field manager name.
	FieldManager string
	// ForceConflicts forces server-side apply on field manager conflicts.
	ForceConflicts bool
	// Prune deletes objects that the previously applied revision declared
	// but the target set no longer does.
	Prune bool
}

// ApplyOutput is the outcome of an apply.
type ApplyOutput struct {
	// Revision is the stored revision this apply submitted.
	Revision *model.Revision
	// Applied is the number of Kubernetes objects submitted.
	Applied int
	// Deleted is the number of pruned objects.
	Deleted int
	// Changes relative to the previously applied revision.
	Changes manifest.ChangeList
	// Errors are fatal validation failures; set only when apply was refused.
	Errors []string
}

// Apply validates the target set, records it as a revision when it came from
// a path, and submits it with server-side apply. The cluster is never
// contacted when validation fails. With Prune set, objects removed since the
// previously applied revision are deleted after the apply.
func (u *UseCase) Apply(ctx context.Context, in *ApplyInput) (*ApplyOutput, error) {
	if in == nil {
		in = &ApplyInput{}
	}
	if u.Kube == nil {
		return nil, fmt.Errorf("kube client is not configured")
	}
	if u.Repos == nil || u.Repos.Revision == nil {
		return nil, fmt.Errorf("revision store is not configured")
	}
	logger := logging.FromContext(ctx)

	// Resolve the target set and, for stored sources, its revision.
	var set *manifest.Set
	var rev *model.Revision
	var err error
	switch {
	case in.Path != "" && in.RevisionID != "":
		return nil, fmt.Errorf("path and revision are mutually exclusive")
	case in.Path != "":
		set, err = manifest.ParsePath(in.Path)
		if err != nil {
			return nil, err
		}
	case in.RevisionID != "":
		set, rev, err = u.resolveSet(ctx, "", in.RevisionID)
		if err != nil {
			return nil, err
		}
	default:
		rev, err = u.Repos.Revision.Latest(ctx)
		if err != nil {
			return nil, fmt.Errorf("get latest revision: %w", err)
		}
		set, err = parseRevision(rev)
		if err != nil {
			return nil, err
		}
	}

	out := &ApplyOutput{}
	vres := manifest.Validate(set)
	if vres.HasErrors() {
		for _, verr := range vres.Errors {
			out.Errors = append(out.Errors, verr.Error())
			logger.Error(ctx, verr.Error())
		}
		return out, fmt.Errorf("validation failed (%d errors)", len(vres.Errors))
	}

	// A path-based apply records its revision before touching the cluster.
	if rev == nil {
		canonical, merr := set.MarshalYAML()
		if merr != nil {
			return out, fmt.Errorf("canonicalize set: %w", merr)
		}
		rev = &model.Revision{
			SourcePath: in.Path,
			Source:     string(canonical),
			Digest:     naming.ContentDigest(string(canonical)),
			Documents:  set.Len(),
		}
		if err := u.Repos.Revision.Create(ctx, rev); err != nil {
			return out, fmt.Errorf("store revision: %w", err)
		}
	}
	out.Revision = rev

	// Changes relative to the previously applied state drive reporting and prune.
	var oldSet *manifest.Set
	prev, err := u.Repos.Revision.LatestApplied(ctx)
	switch {
	case err == nil:
		if oldSet, err = parseRevision(prev); err != nil {
			return out, err
		}
	case errors.Is(err, model.ErrRevisionNotFound):
		// First apply; everything is an addition.
	default:
		return out, fmt.Errorf("get latest applied revision: %w", err)
	}
	out.Changes = manifest.Diff(oldSet, set)

	// Namespaces first so applying namespaced objects cannot race their namespace.
	for _, ns := range setNamespaces(set) {
		if err := u.Kube.CreateNamespace(ctx, ns); err != nil {
			return out, err
		}
	}

	conv := &kube.Converter{
		Labels: map[string]string{kube.LabelAppK8sManagedBy: kube.ManagedByValue},
		Annotations: map[string]string{
			kube.AnnotationRevisionID:     rev.ID,
			kube.AnnotationRevisionDigest: rev.Digest,
		},
	}
	objs, err := conv.Convert(set)
	if err != nil {
		return out, fmt.Errorf("convert set: %w", err)
	}
	if err := u.Kube.ApplyObjects(ctx, objs, &kube.ApplyOptions{DefaultNamespace: in.Namespace, FieldManager: in.FieldManager, ForceConflicts: in.ForceConflicts}); err != nil {
		return out, fmt.Errorf("apply objects: %w", err)
	}
	out.Applied = len(objs)

	if in.Prune && oldSet != nil {
		var removed []manifest.Document
		for _, ch := range out.Changes {
			if ch.Op != manifest.OpRemoved {
				continue
			}
			if doc, ok := oldSet.Get(ch.Key); ok {
				removed = append(removed, doc)
			}
		}
		if len(removed) > 0 {
			delObjs, derr := (&kube.Converter{}).Convert(manifest.NewSet(removed))
			if derr != nil {
				return out, fmt.Errorf("convert removed objects: %w", derr)
			}
			n, derr := u.Kube.DeleteObjects(ctx, delObjs, &kube.DeleteOptions{DefaultNamespace: in.Namespace, IgnoreErrors: true})
			out.Deleted = n
			if derr != nil {
				logger.Warn(ctx, "prune incomplete", "deleted", n, "err", derr)
			}
		}
	}

	if err := u.Repos.Revision.MarkApplied(ctx, rev.ID); err != nil {
		return out, fmt.Errorf("mark revision applied: %w", err)
	}
	rev.Applied = true
	logger.Info(ctx, "revision applied", "revision", rev.ID, "applied", out.Applied, "deleted", out.Deleted)
	return out, nil
}

// setNamespaces returns the distinct namespaces declared by the set, sorted.
func setNamespaces(set *manifest.Set) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, doc := range set.Documents() {
		ns := doc.Key.Namespace
		if ns == "" {
			continue
		}
		if _, ok := seen[ns]; ok {
			continue
		}
		seen[ns] = struct{}{}
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}
