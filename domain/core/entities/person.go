package entities

// ChangeType classifies a structured changelog entry
type ChangeType string

const (
	ChangeAdd      ChangeType = "ADD"
	ChangeEdit     ChangeType = "EDIT"
	ChangeDelete   ChangeType = "DELETE"
	ChangeReparent ChangeType = "REPARENT"
)

// ApproxDate carries a possibly partial date alongside a known flag.
// A person's birth may be recorded as year-only, or not at all.
type ApproxDate struct {
	Known bool `json:"known"`
	Year  *int `json:"year"`
	Month *int `json:"month"`
	Day   *int `json:"day"`
}

// Address holds freeform postal information
type Address struct {
	Freeform *string `json:"freeform"`
}

// PersonNode is one person in a tree document.
// ParentID is the authoritative relationship pointer; ChildrenIDs is a
// derived index and is recomputed after every merge, never hand-edited.
// Conjugal relationships live in Marriage records, not in SpouseIDs.
type PersonNode struct {
	NodeID      string     `json:"nodeId"`
	Name        *string    `json:"name"`
	ImageURL    *string    `json:"imageUrl"`
	Phone       *string    `json:"phone"`
	PhoneE164   *string    `json:"phoneE164"`
	Email       *string    `json:"email"`
	DOB         *string    `json:"dob"` // YYYY-MM-DD
	DOBApprox   ApproxDate `json:"dobApprox"`
	DOD         *string    `json:"dod"` // YYYY-MM-DD
	DODApprox   ApproxDate `json:"dodApprox"`
	AgeProvided *int       `json:"ageProvided"`
	DOBInferred bool       `json:"dobInferred"`
	Address     Address    `json:"address"`
	SpouseIDs   []string   `json:"spouseIds"`
	ParentID    *string    `json:"parentId"`
	ChildrenIDs []string   `json:"childrenIds"`
	IsEditor    bool       `json:"isEditor"`
	EditorSince *string    `json:"editorSince"`
	EditedBy    *string    `json:"editedBy"`
	EditedTime  *string    `json:"editedTime"`
}

// Clone returns a deep copy so merge output never aliases its inputs
func (n *PersonNode) Clone() *PersonNode {
	if n == nil {
		return nil
	}
	c := *n
	c.Name = clonePtr(n.Name)
	c.ImageURL = clonePtr(n.ImageURL)
	c.Phone = clonePtr(n.Phone)
	c.PhoneE164 = clonePtr(n.PhoneE164)
	c.Email = clonePtr(n.Email)
	c.DOB = clonePtr(n.DOB)
	c.DOD = clonePtr(n.DOD)
	c.DOBApprox = n.DOBApprox.clone()
	c.DODApprox = n.DODApprox.clone()
	c.AgeProvided = clonePtr(n.AgeProvided)
	c.Address = Address{Freeform: clonePtr(n.Address.Freeform)}
	c.SpouseIDs = cloneStrings(n.SpouseIDs)
	c.ParentID = clonePtr(n.ParentID)
	c.ChildrenIDs = cloneStrings(n.ChildrenIDs)
	c.EditorSince = clonePtr(n.EditorSince)
	c.EditedBy = clonePtr(n.EditedBy)
	c.EditedTime = clonePtr(n.EditedTime)
	return &c
}

func (a ApproxDate) clone() ApproxDate {
	return ApproxDate{
		Known: a.Known,
		Year:  clonePtr(a.Year),
		Month: clonePtr(a.Month),
		Day:   clonePtr(a.Day),
	}
}

// Marriage links two persons by node id. It carries no provenance
// timestamp, so merges cannot arbitrate between divergent copies.
type Marriage struct {
	ID           string  `json:"id"`
	A            string  `json:"a"`
	B            string  `json:"b"`
	MarriageDate *string `json:"marriageDate"`
	DivorceDate  *string `json:"divorceDate"`
}

// ChangeLog is one append-only edit-history entry. Entries are never
// mutated after creation; (EditedTime, EditedBy) identifies an entry.
type ChangeLog struct {
	EditedBy   string             `json:"editedBy"`
	EditedTime string             `json:"editedTime"`
	Changes    string             `json:"changes"`
	Structured []StructuredChange `json:"structured"`
}

// StructuredChange records one machine-readable mutation within an edit
type StructuredChange struct {
	Type          ChangeType     `json:"type"`
	NodeID        *string        `json:"nodeId"`
	FieldsChanged []string       `json:"fieldsChanged"`
	Before        map[string]any `json:"before"`
	After         map[string]any `json:"after"`
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
