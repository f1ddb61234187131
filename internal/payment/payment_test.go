package payment

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulator_Charge(t *testing.T) {
	sim := NewSimulator()

	receipt, err := sim.Charge(context.Background(), "user-1", "plan-1", 29.99)
	require.NoError(t, err)

	assert.True(t, receipt.Success)
	assert.True(t, strings.HasPrefix(receipt.TransactionID, "TXN"))
	assert.Equal(t, 29.99, receipt.Amount)
	assert.Equal(t, "USD", receipt.Currency)
	assert.NotEmpty(t, receipt.IdempotenceKey)
}

func TestReceipt_IdempotenceKeyNotSerialized(t *testing.T) {
	receipt := Receipt{
		Success:        true,
		TransactionID:  "TXN1",
		Amount:         10,
		Currency:       "USD",
		IdempotenceKey: "secret-key",
	}

	data, err := json.Marshal(receipt)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret-key")
	assert.Contains(t, string(data), `"transactionId":"TXN1"`)
}
