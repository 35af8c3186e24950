// Package filter implements the filter-and-fallback resolution
// pipeline: it splits a query into parameters the upstream API can
// evaluate and predicates that must run client-side, fetches once,
// filters, projects, and falls back to the local contact snapshot when
// the upstream-filtered set comes back empty.
package filter

import (
	"context"
	"log"

	"github.com/recruitkit/crmbridge/internal/crm"
	"github.com/recruitkit/crmbridge/internal/localstore"
)

// Resolver wires the upstream client to the local snapshot.
type Resolver struct {
	CRM    *crm.Client
	Local  *localstore.Store
	Logger *log.Logger
}

// NewResolver builds a resolver. A nil logger falls back to the
// default logger with a [FILTER] prefix.
func NewResolver(client *crm.Client, local *localstore.Store, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(log.Writer(), "[FILTER] ", log.LstdFlags)
	}
	if local == nil {
		local = localstore.New(nil, nil)
	}
	return &Resolver{CRM: client, Local: local, Logger: logger}
}

// Contacts resolves one contact query: exactly one upstream fetch,
// client-side filtering, projection, and a local-snapshot fallback
// when nothing survives. Upstream failures collapse to an empty
// surviving set, so the caller only ever sees the fallback result (or
// nothing).
func (r *Resolver) Contacts(ctx context.Context, spec Spec, page Page) []ContactDisplay {
	params := page.Values()
	if spec.FullName != "" {
		first, last := splitName(spec.FullName)
		params.Set("first_name", first)
		if last != "" {
			params.Set("last_name", last)
		}
	}

	contacts, err := r.CRM.ListContacts(ctx, params)
	if err != nil {
		r.Logger.Printf("contacts fetch failed, falling back to local store: %v", err)
		contacts = nil
	}

	var records []ContactDisplay
	for _, c := range contacts {
		if matchContact(c, spec) {
			records = append(records, ProjectContact(c))
		}
	}
	if len(records) > 0 {
		return records
	}
	return r.localContacts(spec)
}

// localContacts evaluates the same predicate set against the snapshot
// and projects matching rows into the display shape. The two sources
// are never merged into one response.
func (r *Resolver) localContacts(spec Spec) []ContactDisplay {
	rows := r.Local.Filter(localstore.Query{
		FullName:     spec.FullName,
		Tag:          spec.Tag,
		CreatedBy:    spec.CreatedBy,
		Owner:        spec.Owner,
		PrimaryOwner: spec.PrimaryOwner,
	})
	var records []ContactDisplay
	for _, row := range rows {
		records = append(records, projectLocalRow(row))
	}
	return records
}

// Jobs resolves one job query. The tag predicate is pushed upstream
// as a server parameter and still evaluated client-side; there is no
// fallback because the snapshot holds only contacts.
func (r *Resolver) Jobs(ctx context.Context, spec Spec, page Page) []JobDisplay {
	params := page.Values()
	if spec.Tag != "" {
		params.Set("tag", spec.Tag)
	}

	jobs, err := r.CRM.ListJobs(ctx, params)
	if err != nil {
		r.Logger.Printf("jobs fetch failed: %v", err)
		return nil
	}

	var records []JobDisplay
	for _, j := range jobs {
		if matchJob(j, spec) {
			records = append(records, ProjectJob(j))
		}
	}
	return records
}

// ResolveContactID finds a contact id by full name: first through the
// regular resolution pipeline (which already includes the fallback),
// then through a direct snapshot name lookup.
func (r *Resolver) ResolveContactID(ctx context.Context, fullName string) (string, bool) {
	records := r.Contacts(ctx, Spec{FullName: fullName}, Page{Limit: 100})
	for _, rec := range records {
		if rec.ID != "" {
			return rec.ID, true
		}
	}
	return r.Local.LookupID(fullName)
}
