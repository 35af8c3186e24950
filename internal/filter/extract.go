package filter

import (
	"strings"

	"github.com/recruitkit/crmbridge/internal/crm"
	"github.com/recruitkit/crmbridge/internal/localstore"
)

// ContactDisplay is the flat, UI-ready projection of a contact record.
// Field names match the JSON the service has always emitted.
type ContactDisplay struct {
	ID                    string   `json:"Id"`
	FullName              string   `json:"FullName"`
	CreatedBy             string   `json:"CreatedBy"`
	PrimaryOwner          string   `json:"PrimaryOwner"`
	Tags                  []string `json:"Tags"`
	Location              string   `json:"Location"`
	EmailWork             string   `json:"Email_Work"`
	EmailPersonal         string   `json:"Email_Personal"`
	PhoneWork             string   `json:"Phone_Work"`
	PhoneMobile           string   `json:"Phone_Mobile"`
	LastActivityDate      string   `json:"LastActivityDate"`
	LastActivityRegarding string   `json:"LastActivityRegarding"`
	Description           string   `json:"Description"`
}

// JobDisplay is the flat projection of a job record.
type JobDisplay struct {
	Company      string `json:"company"`
	JobTitle     string `json:"job_title"`
	PrimaryOwner string `json:"primary_owner"`
}

func valueOf(v *crm.Valued) string {
	if v == nil {
		return ""
	}
	return v.Value
}

func flattenTags(tags map[string][]crm.Ref) []string {
	var out []string
	for _, group := range tags {
		for _, t := range group {
			if t.Title != "" {
				out = append(out, t.Title)
			}
		}
	}
	return out
}

// ProjectContact flattens one contact record. Pure and total: missing
// nested sub-objects come out as empty strings. The home address wins
// over the business one for Location.
func ProjectContact(c crm.Contact) ContactDisplay {
	location := valueOf(c.AddressesHome)
	if location == "" {
		location = valueOf(c.AddressesBusiness)
	}
	primary := ""
	if p := c.PrimaryOwner(); p != nil {
		primary = p.Title
	}
	return ContactDisplay{
		ID:                    c.ID,
		FullName:              c.FullName,
		CreatedBy:             refTitle(c.CreatedByID),
		PrimaryOwner:          primary,
		Tags:                  flattenTags(c.Tags),
		Location:              location,
		EmailWork:             valueOf(c.EmailWork),
		EmailPersonal:         valueOf(c.EmailPersonal),
		PhoneWork:             valueOf(c.PhoneWorkMain),
		PhoneMobile:           valueOf(c.PhoneMobile),
		LastActivityDate:      c.LastActivityDate,
		LastActivityRegarding: refTitle(c.LastActivityRegarding),
		Description:           c.Description,
	}
}

// ProjectJob flattens one job record.
func ProjectJob(j crm.Job) JobDisplay {
	primary := ""
	if p := j.PrimaryOwner(); p != nil {
		primary = p.Title
	}
	return JobDisplay{
		Company:      refTitle(j.AccountID),
		JobTitle:     refTitle(j.JobTitleID),
		PrimaryOwner: primary,
	}
}

// projectLocalRow maps a snapshot row into the contact display shape.
// The snapshot carries only the predicate columns plus the id, so the
// remaining display fields stay empty.
func projectLocalRow(row localstore.Row) ContactDisplay {
	return ContactDisplay{
		ID:           row.Get("Id"),
		FullName:     row.Get("Full Name"),
		CreatedBy:    row.Get("Created By"),
		PrimaryOwner: row.Get("Primary Owner"),
		Tags:         splitTags(row.Get("Tags")),
	}
}

func splitTags(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
