package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		total      float64
		prior      float64
		increment  float64
		status     string
		wantPaid   float64
		wantDue    float64
		wantStatus string
	}{
		{
			name:  "first partial payment",
			total: 1000, prior: 0, increment: 400, status: "pending",
			wantPaid: 400, wantDue: 600, wantStatus: StatusPartial,
		},
		{
			name:  "final payment settles",
			total: 1000, prior: 400, increment: 600, status: StatusPartial,
			wantPaid: 1000, wantDue: 0, wantStatus: StatusPaid,
		},
		{
			name:  "full payment in one go",
			total: 250, prior: 0, increment: 250, status: "booked",
			wantPaid: 250, wantDue: 0, wantStatus: StatusPaid,
		},
		{
			name:  "zero increment is a no-op",
			total: 1000, prior: 400, increment: 0, status: StatusPartial,
			wantPaid: 400, wantDue: 600, wantStatus: StatusPartial,
		},
		{
			name:  "zero increment keeps original status when nothing paid",
			total: 1000, prior: 0, increment: 0, status: "pending",
			wantPaid: 0, wantDue: 1000, wantStatus: "pending",
		},
		{
			name:  "fractional amounts",
			total: 99.90, prior: 33.30, increment: 33.30, status: StatusPartial,
			wantPaid: 66.60, wantDue: 33.30, wantStatus: StatusPartial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.total, tt.prior, tt.increment, tt.status)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantPaid, got.Paid, 1e-9)
			assert.InDelta(t, tt.wantDue, got.Due, 1e-9)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestApplyDueIsNeverNegative(t *testing.T) {
	for _, tt := range []struct{ total, prior, inc float64 }{
		{0, 0, 0},
		{100, 100, 0},
		{100, 0, 100},
		{50, 25, 25},
	} {
		got, err := Apply(tt.total, tt.prior, tt.inc, "pending")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Due, 0.0, "total=%v prior=%v inc=%v", tt.total, tt.prior, tt.inc)
	}
}

func TestApplyStatusInvariants(t *testing.T) {
	// due == 0 implies paid; 0 < paid < total implies partial.
	settled, err := Apply(500, 250, 250, StatusPartial)
	require.NoError(t, err)
	assert.Zero(t, settled.Due)
	assert.Equal(t, StatusPaid, settled.Status)

	partial, err := Apply(500, 0, 100, "pending")
	require.NoError(t, err)
	assert.Greater(t, partial.Paid, 0.0)
	assert.Less(t, partial.Paid, partial.Total)
	assert.Equal(t, StatusPartial, partial.Status)
}

func TestApplyRejectsOverpayment(t *testing.T) {
	// Overshooting the due balance is refused and the ledger is unchanged.
	got, err := Apply(1000, 0, 1500, "pending")
	require.ErrorIs(t, err, ErrExceedsDue)
	assert.Equal(t, 0.0, got.Paid)
	assert.Equal(t, 1000.0, got.Due)
	assert.Equal(t, "pending", got.Status)

	// Exactly the due balance is fine.
	got, err = Apply(1000, 400, 600, StatusPartial)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, got.Status)
}

func TestApplyRejectsNegativeAmount(t *testing.T) {
	got, err := Apply(1000, 400, -50, StatusPartial)
	require.ErrorIs(t, err, ErrNegativeAmount)
	assert.Equal(t, 400.0, got.Paid)
	assert.Equal(t, 600.0, got.Due)
	assert.Equal(t, StatusPartial, got.Status)
}
