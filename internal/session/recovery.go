package session

import (
	"context"
	"net/url"
	"strings"

	"github.com/reteach/reteach-cli/internal/diagnostic"
)

// DeriveFormURL builds the public form URL for a slug.
func DeriveFormURL(origin, slug string) string {
	return strings.TrimRight(origin, "/") + "/form/" + slug
}

// ResolvePublishInfo runs the publish-info recovery protocol. A publish
// step can be entered through a fresh process or a deep link before the
// in-memory store has been repopulated, so the slug is looked up in
// priority order, each tier short-circuiting on success:
//
//  1. the store's own publish record;
//  2. query parameters ("slug", optionally "formUrl" and "formId");
//  3. the mirrored record in the recovery store.
//
// A missing form URL is derived from origin as {origin}/form/{slug}; a
// missing form id defaults to the slug. A record recovered from tiers 2
// or 3 is written back to the store (and its mirror). Returns false when
// every tier fails: the diagnostic has no recoverable publish target and
// the caller must redirect back to preview.
func ResolvePublishInfo(ctx context.Context, store *Store, query url.Values, origin string) (diagnostic.PublishInfo, bool) {
	if info := store.PublishInfo(); info.Complete() {
		if info.FormURL == "" {
			info.FormURL = DeriveFormURL(origin, info.FormSlug)
			store.SetPublishInfo(ctx, info)
		}
		return info, true
	}

	if slug := query.Get("slug"); slug != "" {
		info := diagnostic.PublishInfo{
			FormURL:  query.Get("formUrl"),
			FormSlug: slug,
			FormID:   query.Get("formId"),
		}
		if info.FormURL == "" {
			info.FormURL = DeriveFormURL(origin, slug)
		}
		if info.FormID == "" {
			info.FormID = slug
		}
		store.SetPublishInfo(ctx, info)
		return info, true
	}

	if store.mirror != nil {
		if info, ok := store.mirror.LoadPublishInfo(ctx); ok {
			if info.FormURL == "" {
				info.FormURL = DeriveFormURL(origin, info.FormSlug)
			}
			if info.FormID == "" {
				info.FormID = info.FormSlug
			}
			store.SetPublishInfo(ctx, info)
			return info, true
		}
	}

	return diagnostic.PublishInfo{}, false
}
