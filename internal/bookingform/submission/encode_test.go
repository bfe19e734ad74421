package submission

import (
	"testing"
	"time"

	"assetbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_FullInput(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	start := time.Date(2024, 3, 1, 9, 30, 45, 0, loc)
	end := time.Date(2024, 3, 2, 18, 0, 0, 0, loc)
	userID := "usr_1"

	values, err := Encode(&model.BookingInput{
		ID:          "bk_1",
		Name:        "Photo shoot",
		Description: "Studio B",
		Custodian:   &model.Custodian{ID: "tm_1", Name: "Jane Doe", UserID: &userID},
		StartDate:   &start,
		EndDate:     &end,
		AssetIDs:    []string{"a1", "a2"},
	}, model.IntentReserve, false)

	require.NoError(t, err)
	assert.Equal(t, "reserve", values.Get(FieldIntent))
	assert.Equal(t, "no", values.Get(FieldNameChangeOnly))
	assert.Equal(t, "bk_1", values.Get(FieldID))
	assert.Equal(t, "Photo shoot", values.Get(FieldName))
	assert.Equal(t, "Studio B", values.Get(FieldDescription))
	assert.JSONEq(t, `{"id":"tm_1","name":"Jane Doe","userId":"usr_1"}`, values.Get(FieldCustodian))
	assert.Equal(t, "2024-03-01T09:30", values.Get(FieldStartDate))
	assert.Equal(t, "2024-03-02T18:00", values.Get(FieldEndDate))
	assert.Equal(t, "a1", values.Get("assetIds[0]"))
	assert.Equal(t, "a2", values.Get("assetIds[1]"))
}

func TestEncode_NameChangeOnly(t *testing.T) {
	values, err := Encode(&model.BookingInput{ID: "bk_1", Name: "Renamed"}, model.IntentSave, true)

	require.NoError(t, err)
	assert.Equal(t, "yes", values.Get(FieldNameChangeOnly))
	assert.Equal(t, "Renamed", values.Get(FieldName))
	for _, absent := range []string{FieldDescription, FieldCustodian, FieldStartDate, FieldEndDate, "assetIds[0]"} {
		_, ok := values[absent]
		assert.False(t, ok, "%s should be omitted", absent)
	}
}

func TestEncode_NilInput(t *testing.T) {
	values, err := Encode(nil, model.IntentScan, false)

	require.NoError(t, err)
	assert.Equal(t, "scan", values.Get(FieldIntent))
	assert.Len(t, values, 2)
}
