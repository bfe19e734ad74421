package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"assetbook/pkg/model"

	"github.com/go-playground/validator/v10"
)

var (
	errCustodianEmpty   = errors.New("custodian reference is empty")
	errCustodianShape   = errors.New("custodian reference needs a non-empty id and a name")
	errCustodianPayload = errors.New("custodian reference is not a JSON object")
)

type custodianPayload struct {
	ID     *string `json:"id"`
	Name   *string `json:"name"`
	UserID *string `json:"userId"`
}

// ParseCustodian decodes the serialized custodian form value.
func ParseCustodian(raw string) (model.Custodian, error) {
	payload, err := decodeCustodian(raw)
	if err != nil {
		return model.Custodian{}, err
	}
	if payload.ID == nil || strings.TrimSpace(*payload.ID) == "" || payload.Name == nil {
		return model.Custodian{}, errCustodianShape
	}
	return model.Custodian{
		ID:     *payload.ID,
		Name:   *payload.Name,
		UserID: payload.UserID,
	}, nil
}

func decodeCustodian(raw string) (*custodianPayload, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errCustodianEmpty
	}
	if !strings.HasPrefix(raw, "{") {
		return nil, errCustodianPayload
	}
	var payload custodianPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errCustodianPayload, err)
	}
	return &payload, nil
}

// validateCustodianJSON backs the custodian_json tag: the value must decode.
func validateCustodianJSON(fl validator.FieldLevel) bool {
	_, err := decodeCustodian(fl.Field().String())
	return err == nil
}

// validateCustodian backs the custodian tag: the decoded object must be complete.
func validateCustodian(fl validator.FieldLevel) bool {
	_, err := ParseCustodian(fl.Field().String())
	return err == nil
}
