package attribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assureops/api/pkg/domain/shared"
)

func testRules() []Rule {
	return []Rule{
		{Pattern: "192.168.1.*", BusinessID: "biz-pay", BusinessName: "Payments", Reason: "payment subnet"},
		{Pattern: "192.168.*.*", BusinessID: "biz-core", BusinessName: "Core Platform", Reason: "office network"},
		{Pattern: "10.20.*.*", BusinessID: "biz-data", BusinessName: "Data Services", Reason: "data center"},
	}
}

func TestRule_Validate(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{"missing business id", Rule{Pattern: "10.0.0.*", BusinessName: "X"}},
		{"missing business name", Rule{Pattern: "10.0.0.*", BusinessID: "x"}},
		{"too few octets", Rule{Pattern: "10.0.0", BusinessID: "x", BusinessName: "X"}},
		{"empty octet", Rule{Pattern: "10..0.0", BusinessID: "x", BusinessName: "X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.rule.Validate(), shared.ErrValidation)
		})
	}

	assert.NoError(t, Rule{Pattern: "*.*.*.*", BusinessID: "x", BusinessName: "X"}.Validate())
}

func TestNewRecommender_RejectsInvalidRule(t *testing.T) {
	_, err := NewRecommender([]Rule{{Pattern: "bad", BusinessID: "x", BusinessName: "X"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule 0")
}

func TestRecommender_FirstMatchWins(t *testing.T) {
	r, err := NewRecommender(testRules())
	require.NoError(t, err)

	// 192.168.1.* is listed before the broader 192.168.*.* prefix.
	rec, ok := r.Recommend("192.168.1.50")
	require.True(t, ok)
	assert.Equal(t, "biz-pay", rec.BusinessID)
	assert.Equal(t, "payment subnet", rec.Reason)

	rec, ok = r.Recommend("192.168.7.50")
	require.True(t, ok)
	assert.Equal(t, "biz-core", rec.BusinessID)
}

func TestRecommender_NoMatch(t *testing.T) {
	r, err := NewRecommender(testRules())
	require.NoError(t, err)

	_, ok := r.Recommend("172.16.0.1")
	assert.False(t, ok)

	_, ok = r.Recommend("")
	assert.False(t, ok)

	_, ok = r.Recommend("not-an-ip")
	assert.False(t, ok)
}

func TestRecommender_BusinessName(t *testing.T) {
	r, err := NewRecommender(testRules())
	require.NoError(t, err)

	name, ok := r.BusinessName("biz-data")
	require.True(t, ok)
	assert.Equal(t, "Data Services", name)

	_, ok = r.BusinessName("biz-unknown")
	assert.False(t, ok)
}

func TestRecommender_EmptyRuleSet(t *testing.T) {
	r, err := NewRecommender(nil)
	require.NoError(t, err)

	_, ok := r.Recommend("10.0.0.1")
	assert.False(t, ok)
	assert.Empty(t, r.Rules())
}
