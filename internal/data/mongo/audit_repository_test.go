package mongo

import (
	"testing"

	"github.com/corebank/payment-service/internal/domain/audit"
	"github.com/corebank/payment-service/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestAuditRecord_BsonDocumentShape(t *testing.T) {
	// The repository filters on payment_id and sorts on recorded_at; this
	// pins the document keys those queries depend on.
	record := audit.NewRecord(uuid.New(), payment.StatusPending, payment.StatusComplete, "")

	raw, err := bson.Marshal(record)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	assert.Contains(t, doc, "payment_id")
	assert.Contains(t, doc, "recorded_at")
	assert.Contains(t, doc, "to_status")
	assert.NotContains(t, doc, "reason", "empty reason should be omitted")
}

// Repository behavior against a live collection is covered by integration
// environments; the mongo driver's concrete types make unit mocking
// impractical here.
