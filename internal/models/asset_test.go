package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeQuantity(t *testing.T) {
	cases := []struct {
		good, fair, damaged, want int
	}{
		{5, 1, 0, 6},
		{3, 0, 2, 5},
		{0, 0, 0, 1},
		{0, 0, 1, 1},
		{10, 10, 10, 30},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ComputeQuantity(tc.good, tc.fair, tc.damaged), "%+v", tc)
	}
}

func TestAssetNormalize(t *testing.T) {
	a := Asset{QuantityGood: 2, QuantityDamaged: 1}
	a.Normalize()
	assert.Equal(t, 3, a.Quantity)
	assert.Equal(t, ConditionGood, a.Condition)

	lost := Asset{Condition: ConditionLost}
	lost.Normalize()
	assert.Equal(t, 1, lost.Quantity)
	assert.Equal(t, ConditionLost, lost.Condition)
}

func TestSnapshotDropsRelations(t *testing.T) {
	a := Asset{Name: "Meja", Category: &Category{Name: "Mebel"}, Logs: []TransactionLog{{}}}
	s := a.Snapshot()
	assert.Nil(t, s.Category)
	assert.Nil(t, s.Logs)
	assert.NotNil(t, a.Category, "the original keeps its relations")
}

func TestUUIDJSON(t *testing.T) {
	id := NewUUID()
	raw, err := json.Marshal(struct {
		ID  UUID  `json:"id"`
		Ref *UUID `json:"ref"`
	}{ID: id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+id.String()+`","ref":null}`, string(raw))

	var back struct {
		ID UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, id, back.ID)

	_, err = ParseUUID("not-a-uuid")
	assert.Error(t, err)
	assert.True(t, UUID{}.IsZero())
}

func TestEnums(t *testing.T) {
	assert.True(t, ConditionLost.Valid())
	assert.False(t, Condition("broken").Valid())
	assert.Equal(t, "LAB", LocationTypeLab.CodePrefix())
	assert.Equal(t, "KLS", LocationTypeClassroom.CodePrefix())
	assert.Equal(t, "RNG", LocationTypeRoom.CodePrefix())
}
