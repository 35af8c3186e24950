// Package activity builds and submits the fixed-shape "Screen"
// activity record to the CRM.
package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/recruitkit/crmbridge/internal/crm"
	"github.com/recruitkit/crmbridge/internal/filter"
)

// Crelate's verb classification for a screen activity.
const (
	screenVerbID    = "2d4edbf9-a7a2-4174-ae53-a8f900bb0381"
	screenVerbTitle = "Screen"
	screenSubject   = "Screen via API"
)

// ErrContactNotFound signals that a full-name lookup resolved to no
// contact in either source; handlers map it to a 404.
var ErrContactNotFound = errors.New("contact not found")

// Parent links the activity to the contact it belongs to.
type Parent struct {
	ID         string `json:"Id"`
	EntityName string `json:"EntityName"`
}

// Record is the write-only activity entity sent upstream, wrapped in
// an {entity: ...} envelope on the wire.
type Record struct {
	ParentID     Parent  `json:"ParentId"`
	VerbID       crm.Ref `json:"VerbId"`
	Subject      string  `json:"Subject"`
	HTML         string  `json:"Html"`
	IsEngagement bool    `json:"IsEngagement"`
	Completed    bool    `json:"Completed"`
	When         string  `json:"When"`
}

type envelope struct {
	Entity Record `json:"entity"`
}

// Poster submits screen activities, resolving contact ids by name
// through the filter pipeline when needed.
type Poster struct {
	CRM      *crm.Client
	Resolver *filter.Resolver
	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewPoster wires a poster to the upstream client and resolver.
func NewPoster(client *crm.Client, resolver *filter.Resolver) *Poster {
	return &Poster{CRM: client, Resolver: resolver, now: time.Now}
}

// newRecord assembles the fixed-shape payload around a contact id and
// note text, stamped with the current UTC time.
func (p *Poster) newRecord(contactID, notes string) Record {
	now := p.now
	if now == nil {
		now = time.Now
	}
	return Record{
		ParentID:     Parent{ID: contactID, EntityName: "Contacts"},
		VerbID:       crm.Ref{ID: screenVerbID, Title: screenVerbTitle},
		Subject:      screenSubject,
		HTML:         notes,
		IsEngagement: true,
		Completed:    true,
		When:         now().UTC().Format(time.RFC3339),
	}
}

// PostScreen submits one screen activity for the given contact.
// Upstream rejection surfaces as a classified error; nothing is
// retried and a duplicate post creates a duplicate activity.
func (p *Poster) PostScreen(ctx context.Context, contactID, notes string) (json.RawMessage, error) {
	return p.CRM.CreateActivity(ctx, envelope{Entity: p.newRecord(contactID, notes)})
}

// PostScreenByName resolves the contact id from a full name, then
// posts. A name that matches neither upstream nor the local snapshot
// fails with ErrContactNotFound before any write is attempted.
func (p *Poster) PostScreenByName(ctx context.Context, fullName, notes string) (json.RawMessage, error) {
	id, ok := p.Resolver.ResolveContactID(ctx, fullName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContactNotFound, fullName)
	}
	return p.PostScreen(ctx, id, notes)
}
