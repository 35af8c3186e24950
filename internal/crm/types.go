package crm

import "encoding/json"

// Ref is Crelate's id/title sub-object, used for creators, accounts,
// job titles, verbs, tags and job types alike.
type Ref struct {
	ID    string `json:"Id"`
	Title string `json:"Title"`
}

// Owner is one entry of a record's Owners list. At most one entry is
// expected to carry IsPrimary, but the API does not enforce that.
type Owner struct {
	ID        string `json:"Id"`
	Title     string `json:"Title"`
	IsPrimary bool   `json:"IsPrimary"`
}

// Valued is the typed address/phone/email sub-object (Addresses_Home,
// PhoneNumbers_Mobile, ...); only the Value field is ever projected.
type Valued struct {
	Value string `json:"Value"`
}

// Contact is a contact record as returned by GET /contacts. Nested
// sub-objects are optional upstream, so they are pointers here; absent
// means "no value", never an error.
type Contact struct {
	ID                    string           `json:"Id"`
	FullName              string           `json:"FullName"`
	CreatedByID           *Ref             `json:"CreatedById"`
	Owners                []Owner          `json:"Owners"`
	Tags                  map[string][]Ref `json:"Tags"`
	AddressesHome         *Valued          `json:"Addresses_Home"`
	AddressesBusiness     *Valued          `json:"Addresses_Business"`
	EmailWork             *Valued          `json:"EmailAddresses_Work"`
	EmailPersonal         *Valued          `json:"EmailAddresses_Personal"`
	PhoneWorkMain         *Valued          `json:"PhoneNumbers_Work_Main"`
	PhoneMobile           *Valued          `json:"PhoneNumbers_Mobile"`
	LastActivityDate      string           `json:"LastActivityDate"`
	LastActivityRegarding *Ref             `json:"LastActivityRegardingId"`
	Description           string           `json:"Description"`
}

// Job is a job record as returned by GET /jobs.
type Job struct {
	ID          string           `json:"Id"`
	AccountID   *Ref             `json:"AccountId"`
	JobTitleID  *Ref             `json:"JobTitleId"`
	CreatedByID *Ref             `json:"CreatedById"`
	Owners      []Owner          `json:"Owners"`
	JobTypeIDs  []Ref            `json:"JobTypeIds"`
	Tags        map[string][]Ref `json:"Tags"`
}

func primaryOwner(owners []Owner) *Owner {
	for i := range owners {
		if owners[i].IsPrimary {
			return &owners[i]
		}
	}
	return nil
}

// PrimaryOwner returns the contact's primary owner, or nil when no
// owner is flagged primary.
func (c Contact) PrimaryOwner() *Owner { return primaryOwner(c.Owners) }

// PrimaryOwner returns the job's primary owner, or nil when no owner
// is flagged primary.
func (j Job) PrimaryOwner() *Owner { return primaryOwner(j.Owners) }

// Envelope is the wrapper Crelate puts around every list response.
type Envelope struct {
	Data     json.RawMessage `json:"Data"`
	Metadata Metadata        `json:"Metadata"`
}

// Metadata carries pagination info for a list response.
type Metadata struct {
	TotalRecords int `json:"TotalRecords"`
}
