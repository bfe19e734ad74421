package validators

import (
	"assetbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingValidator is the $jsonSchema the Bookings collection enforces. Only
// the fields the booking form reads are constrained.
var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"status",
			"start_date",
			"end_date",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"description": bson.M{
				"bsonType": "string",
			},

			"custodian": bson.M{
				"bsonType": "object",
				"required": []string{"id", "name"},
				"properties": bson.M{
					"id":      bson.M{"bsonType": "string", "minLength": 1},
					"name":    bson.M{"bsonType": "string", "minLength": 1},
					"user_id": bson.M{"bsonType": "string"},
				},
			},

			"start_date": bson.M{
				"bsonType": "date",
			},

			"end_date": bson.M{
				"bsonType": "date",
			},

			"status": bson.M{
				"bsonType": "string",
				"enum":     statusNames(),
			},

			"asset_ids": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "string"},
			},

			"flags": bson.M{
				"bsonType": "object",
				"additionalProperties": bson.M{
					"bsonType": "bool",
				},
			},
		},
	},
}

func statusNames() []string {
	names := make([]string, 0, len(model.AllStatuses))
	for _, s := range model.AllStatuses {
		names = append(names, string(s))
	}
	return names
}
