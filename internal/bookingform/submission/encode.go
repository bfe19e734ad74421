// Package submission encodes validated booking input as the outgoing form
// submission and posts it to the external submit endpoint.
package submission

import (
	"fmt"
	"net/url"

	"assetbook/internal/bookingform/dates"
	"assetbook/pkg/model"
)

const (
	FieldID             = "id"
	FieldName           = "name"
	FieldDescription    = "description"
	FieldCustodian      = "custodian"
	FieldStartDate      = "startDate"
	FieldEndDate        = "endDate"
	FieldAssetIDs       = "assetIds"
	FieldNameChangeOnly = "nameChangeOnly"
	FieldIntent         = "intent"
)

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Encode renders input as submission fields. Optional fields the input does
// not carry are omitted; dates keep the wall clock they were entered with.
func Encode(input *model.BookingInput, intent model.Intent, nameChangeOnly bool) (url.Values, error) {
	values := url.Values{}
	values.Set(FieldIntent, string(intent))
	values.Set(FieldNameChangeOnly, yesNo(nameChangeOnly))
	if input == nil {
		return values, nil
	}

	if input.ID != "" {
		values.Set(FieldID, input.ID)
	}
	values.Set(FieldName, input.Name)
	if input.Description != "" {
		values.Set(FieldDescription, input.Description)
	}
	if input.Custodian != nil {
		custodian, err := input.Custodian.MarshalString()
		if err != nil {
			return nil, fmt.Errorf("failed to encode custodian: %w", err)
		}
		values.Set(FieldCustodian, custodian)
	}
	if input.StartDate != nil {
		values.Set(FieldStartDate, dates.FormatInput(*input.StartDate))
	}
	if input.EndDate != nil {
		values.Set(FieldEndDate, dates.FormatInput(*input.EndDate))
	}
	for i, id := range input.AssetIDs {
		values.Set(fmt.Sprintf("%s[%d]", FieldAssetIDs, i), id)
	}
	return values, nil
}
