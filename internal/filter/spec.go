package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/recruitkit/crmbridge/internal/crm"
)

// Spec is the set of optional predicates a query may supply. Empty
// fields are absent predicates; a record survives only if every
// supplied predicate matches.
type Spec struct {
	FullName     string
	Tag          string
	CreatedBy    string
	Owner        string
	PrimaryOwner string
	JobType      string
}

// Page bounds one upstream fetch. Limit must sit in [1,100]; handlers
// validate before any upstream call is attempted.
type Page struct {
	Limit  int
	Offset int
}

// Validate rejects limits outside [1,100] and negative offsets.
func (p Page) Validate() error {
	if p.Limit < 1 || p.Limit > 100 {
		return fmt.Errorf("limit must be between 1 and 100, got %d", p.Limit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("offset must not be negative, got %d", p.Offset)
	}
	return nil
}

// Values renders the page as upstream query parameters.
func (p Page) Values() url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(p.Limit))
	v.Set("offset", strconv.Itoa(p.Offset))
	return v
}

func eqFold(a, b string) bool { return strings.EqualFold(a, b) }

// ownerMatch reports whether any owner title equals want.
func ownerMatch(owners []crm.Owner, want string) bool {
	for _, o := range owners {
		if eqFold(o.Title, want) {
			return true
		}
	}
	return false
}

// primaryOwnerMatch requires an owner flagged primary whose title
// matches; with no primary flagged the predicate never matches.
func primaryOwnerMatch(owners []crm.Owner, want string) bool {
	p := primaryOf(owners)
	return p != nil && eqFold(p.Title, want)
}

func primaryOf(owners []crm.Owner) *crm.Owner {
	for i := range owners {
		if owners[i].IsPrimary {
			return &owners[i]
		}
	}
	return nil
}

// tagMatch scans every tag sub-group; a hit in any group satisfies
// the predicate.
func tagMatch(tags map[string][]crm.Ref, want string) bool {
	for _, group := range tags {
		for _, t := range group {
			if eqFold(t.Title, want) {
				return true
			}
		}
	}
	return false
}

func refTitle(r *crm.Ref) string {
	if r == nil {
		return ""
	}
	return r.Title
}

// matchContact evaluates the client-side predicates against one
// contact record.
func matchContact(c crm.Contact, s Spec) bool {
	if s.FullName != "" && !nameMatches(s.FullName, c.FullName) {
		return false
	}
	if s.CreatedBy != "" && !eqFold(refTitle(c.CreatedByID), s.CreatedBy) {
		return false
	}
	if s.Owner != "" && !ownerMatch(c.Owners, s.Owner) {
		return false
	}
	if s.PrimaryOwner != "" && !primaryOwnerMatch(c.Owners, s.PrimaryOwner) {
		return false
	}
	if s.Tag != "" && !tagMatch(c.Tags, s.Tag) {
		return false
	}
	return true
}

func jobTypeMatch(types []crm.Ref, want string) bool {
	for _, jt := range types {
		if eqFold(jt.Title, want) {
			return true
		}
	}
	return false
}

// matchJob evaluates the client-side predicates against one job
// record. The job_type predicate scans JobTypeIds titles; the tag
// predicate accepts a hit in either the tag sub-groups or the job
// types, since jobs carry their classification in both places.
func matchJob(j crm.Job, s Spec) bool {
	if s.CreatedBy != "" && !eqFold(refTitle(j.CreatedByID), s.CreatedBy) {
		return false
	}
	if s.JobType != "" && !jobTypeMatch(j.JobTypeIDs, s.JobType) {
		return false
	}
	if s.Owner != "" && !ownerMatch(j.Owners, s.Owner) {
		return false
	}
	if s.PrimaryOwner != "" && !primaryOwnerMatch(j.Owners, s.PrimaryOwner) {
		return false
	}
	if s.Tag != "" && !tagMatch(j.Tags, s.Tag) && !jobTypeMatch(j.JobTypeIDs, s.Tag) {
		return false
	}
	return true
}
