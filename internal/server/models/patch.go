package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
)

// ItemPatch lists every field a client may change on an Item.
type ItemPatch struct {
	Title  Optional[string]
	Weight Optional[float64]
}

// serverFields belong to the server; a patch naming any of them is rejected.
var serverFields = map[string]bool{
	"id":      true,
	"user_id": true,
	"created": true,
	"updated": true,
}

// DecodeItemPatch decodes a request body into an ItemPatch. Every failure,
// malformed JSON included, wraps common.ErrorValidation or
// common.ErrorImmutableField.
func DecodeItemPatch(b []byte) (ItemPatch, error) {
	var p ItemPatch
	if err := json.Unmarshal(b, &p); err != nil {
		if errors.Is(err, common.ErrorValidation) || errors.Is(err, common.ErrorImmutableField) {
			return ItemPatch{}, err
		}
		return ItemPatch{}, fmt.Errorf("%w: invalid request payload: %v", common.ErrorValidation, err)
	}
	return p, nil
}

// UnmarshalJSON decodes a sparse JSON object. Unknown keys yield
// common.ErrorValidation, server-owned keys common.ErrorImmutableField.
// Syntax errors are caught by encoding/json before this runs; use
// DecodeItemPatch for request bodies.
func (p *ItemPatch) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	for _, key := range slices.Sorted(maps.Keys(raw)) {
		var err error
		switch key {
		case "title":
			err = p.Title.UnmarshalJSON(raw[key])
		case "weight":
			err = p.Weight.UnmarshalJSON(raw[key])
		default:
			if serverFields[key] {
				return fmt.Errorf("%w: %s", common.ErrorImmutableField, key)
			}
			return fmt.Errorf("%w: unknown field %q", common.ErrorValidation, key)
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %v", common.ErrorValidation, key, err)
		}
	}
	return nil
}

// Validate checks present values against the column limits.
func (p ItemPatch) Validate() error {
	if title, ok := p.Title.Get(); ok {
		return checkLen("title", title, MaxTitleLen)
	}
	return nil
}

// Apply writes the present fields onto item and stamps Updated with now,
// also when the patch is empty. A null clears the field to its column
// default. Identity and ownership are untouched.
func (p ItemPatch) Apply(item *Item, now time.Time) {
	if p.Title.IsSet() {
		item.Title, _ = p.Title.Get()
	}
	if p.Weight.IsSet() {
		item.Weight, _ = p.Weight.Get()
	}
	item.Updated = now
}
