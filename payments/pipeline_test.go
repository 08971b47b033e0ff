package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestUpdatePipelineRecomputesAgainstTotalField(t *testing.T) {
	p := UpdatePipeline("price", 150)
	require.Len(t, p, 3)

	due := p[1].(bson.M)["$set"].(bson.M)["due_amount"].(bson.M)
	sub := due["$max"].(bson.A)[0].(bson.M)["$subtract"].(bson.A)
	assert.Equal(t, "$price", sub[0])
	assert.Equal(t, "$paid_amount", sub[1])
}
