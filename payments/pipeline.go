package payments

import "go.mongodb.org/mongo-driver/bson"

// UpdatePipeline builds the aggregation-pipeline update that applies a
// payment server-side in a single document operation: add the amount to
// paid_amount, recompute due_amount against the field named by
// totalField ("total_amount" for bookings, "price" for booked
// packages), then derive status. Because the whole transition runs
// inside one update, two concurrent payments can never lose an
// increment the way a read-modify-write would.
//
// Callers pair this with a filter requiring due_amount >= amount so a
// racing payment cannot push paid_amount past the total.
func UpdatePipeline(totalField string, amount float64) bson.A {
	return bson.A{
		bson.M{"$set": bson.M{
			"paid_amount": bson.M{"$add": bson.A{
				bson.M{"$ifNull": bson.A{"$paid_amount", 0}},
				amount,
			}},
		}},
		bson.M{"$set": bson.M{
			"due_amount": bson.M{"$max": bson.A{
				bson.M{"$subtract": bson.A{"$" + totalField, "$paid_amount"}},
				0,
			}},
		}},
		bson.M{"$set": bson.M{
			"status": bson.M{"$switch": bson.M{
				"branches": bson.A{
					bson.M{"case": bson.M{"$eq": bson.A{"$due_amount", 0}}, "then": StatusPaid},
					bson.M{"case": bson.M{"$gt": bson.A{"$paid_amount", 0}}, "then": StatusPartial},
				},
				"default": "$status",
			}},
			"updated_at": "$$NOW",
		}},
	}
}
