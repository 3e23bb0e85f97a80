package services

import (
	"fmt"
	"strconv"
	"strings"

	"juris_control_go/models"
)

// NoneSelected is the selector option meaning "no linked record".
const NoneSelected = "None selected"

const labelSeparator = " - "

// Ref is a typed reference to a row in another table: the foreign key plus a
// display label cached at resolution time. The zero Ref means "no link".
type Ref struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// IsZero reports whether the reference links nothing.
func (r Ref) IsZero() bool {
	return r.ID == 0
}

// Key returns the stored form of the foreign key: "" for no link.
func (r Ref) Key() string {
	if r.IsZero() {
		return ""
	}
	return models.FormatID(r.ID)
}

// MakeLabel builds a selector label "{id} - {reference} ({related})".
func MakeLabel(id int64, reference, related string) string {
	return fmt.Sprintf("%d%s%s (%s)", id, labelSeparator, reference, related)
}

// ParseLabelID recovers the id from a label built by MakeLabel. Only the
// first " - " separates the id, so references containing it still parse.
// A trailing ".0" from numeric round-tripping is tolerated.
func ParseLabelID(label string) (int64, error) {
	head, _, _ := strings.Cut(strings.TrimSpace(label), labelSeparator)
	head = strings.TrimSpace(head)
	head = strings.TrimSuffix(head, ".0")

	id, err := strconv.ParseInt(head, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: label %q has no leading id", ErrParseFailure, label)
	}
	return id, nil
}

// ResolveSelection turns a selector choice into a reference. The sentinel
// NoneSelected and a blank choice yield the zero Ref; a plain id ("4",
// "4.0") is accepted as well as a full label.
func ResolveSelection(choice string) (Ref, error) {
	choice = strings.TrimSpace(choice)
	if choice == "" || choice == NoneSelected {
		return Ref{}, nil
	}
	if id, ok := models.ParseID(choice); ok {
		return Ref{ID: id}, nil
	}
	id, err := ParseLabelID(choice)
	if err != nil {
		return Ref{}, err
	}
	return Ref{ID: id, Label: choice}, nil
}

// CaseLabel is the selector label of a case.
func CaseLabel(c models.Case) string {
	return MakeLabel(c.ID, c.Number, c.Client)
}

// CaseRef is the typed reference to a case.
func CaseRef(c models.Case) Ref {
	return Ref{ID: c.ID, Label: CaseLabel(c)}
}

// ClientRef is the typed reference to a client.
func ClientRef(c models.Client) Ref {
	return Ref{ID: c.ID, Label: MakeLabel(c.ID, c.Name, c.TaxID)}
}

// sameKey compares a stored soft reference with an id, accepting "4" and
// "4.0" alike.
func sameKey(stored string, id int64) bool {
	v, ok := models.ParseID(stored)
	return ok && v == id
}
