package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/resilience-works/continuity/pkg/domain/model"
)

func TestDecodeStringList(t *testing.T) {
	t.Run("JSON array", func(t *testing.T) {
		got, err := model.DecodeStringList(`["flood","power_outage"]`)
		gt.NoError(t, err)
		gt.Array(t, got).Equal([]string{"flood", "power_outage"})
	})

	t.Run("single JSON string", func(t *testing.T) {
		got, err := model.DecodeStringList(`"flood"`)
		gt.NoError(t, err)
		gt.Array(t, got).Equal([]string{"flood"})
	})

	t.Run("legacy delimited text", func(t *testing.T) {
		got, err := model.DecodeStringList("flood, power_outage; hurricane")
		gt.NoError(t, err)
		gt.Array(t, got).Equal([]string{"flood", "power_outage", "hurricane"})
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := model.DecodeStringList("")
		gt.NoError(t, err)
		gt.Array(t, got).Length(0)
	})

	t.Run("whitespace only", func(t *testing.T) {
		got, err := model.DecodeStringList("   ")
		gt.NoError(t, err)
		gt.Array(t, got).Length(0)
	})

	t.Run("malformed JSON yields empty list and error", func(t *testing.T) {
		got, err := model.DecodeStringList(`["flood",`)
		gt.Error(t, err)
		gt.Array(t, got).Length(0)
	})

	t.Run("array with blanks is compacted", func(t *testing.T) {
		got, err := model.DecodeStringList(`["flood",""," hurricane "]`)
		gt.NoError(t, err)
		gt.Array(t, got).Equal([]string{"flood", "hurricane"})
	})
}

func TestEncodeStringList(t *testing.T) {
	encoded, err := model.EncodeStringList([]string{"flood", "hurricane"})
	gt.NoError(t, err)
	gt.Value(t, encoded).Equal(`["flood","hurricane"]`)

	decoded, err := model.DecodeStringList(encoded)
	gt.NoError(t, err)
	gt.Array(t, decoded).Equal([]string{"flood", "hurricane"})
}
