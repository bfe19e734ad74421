package mongo

import (
	"testing"

	"assetbook/internal/migrations/mongo/validators"
	"assetbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCollections_UsesConfiguredName(t *testing.T) {
	defs := collections("BookingsV2")

	require.Len(t, defs, 1)
	def, ok := defs["BookingsV2"]
	require.True(t, ok)
	assert.Equal(t, validators.BookingValidator, def.Validator)
	assert.Len(t, def.Indexes, len(BookingsIndexes))
}

func TestBookingsIndexes_CoverStatusLookup(t *testing.T) {
	first, ok := BookingsIndexes[0].Keys.(bson.D)
	require.True(t, ok)
	assert.Equal(t, "status", first[0].Key)
}

func TestBookingValidator_StatusEnum(t *testing.T) {
	schema := validators.BookingValidator["$jsonSchema"].(bson.M)
	properties := schema["properties"].(bson.M)
	status := properties["status"].(bson.M)

	enum := status["enum"].([]string)
	require.Len(t, enum, len(model.AllStatuses))
	for i, s := range model.AllStatuses {
		assert.Equal(t, string(s), enum[i])
	}
	assert.Contains(t, schema["required"], "status")
}
