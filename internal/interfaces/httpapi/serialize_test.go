package httpapi

import (
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tycoon-player-api/internal/domain/player"
)

func TestFormatTimestamp(t *testing.T) {
	whole := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	fractional := time.Date(2024, 1, 2, 3, 4, 5, 120_000_000, time.UTC)
	offset := time.Date(2024, 1, 2, 6, 4, 5, 0, time.FixedZone("MSK", 3*60*60))

	assert.Nil(t, formatTimestamp(nil))
	assert.Equal(t, "2024-01-02T03:04:05", *formatTimestamp(&whole))
	assert.Equal(t, "2024-01-02T03:04:05.120000", *formatTimestamp(&fractional))
	assert.Equal(t, "2024-01-02T03:04:05", *formatTimestamp(&offset))
}

func TestHoldingDTO_MarshalUsesKindColumn(t *testing.T) {
	out, err := sonic.Marshal(toHoldingDTOs(player.AssetCar, []player.Holding{{Type: 3, Count: 2}}))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"car_type":3,"count":2}]`, string(out))
}

func TestToProfileResponse_EmptyHoldingsAreArrays(t *testing.T) {
	out, err := sonic.Marshal(toProfileResponse(player.Profile{Player: player.Player{ID: 1, Username: "bob"}}))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, sonic.Unmarshal(out, &body))
	for _, key := range []string{"businesses", "cars", "houses"} {
		items, ok := body[key].([]any)
		require.Truef(t, ok, "%s should be an array, got %v", key, body[key])
		assert.Empty(t, items)
	}

	p := body["player"].(map[string]any)
	assert.Nil(t, p["created_at"])
	assert.Contains(t, p, "last_visit")
}

func TestPreflightResponse_NoContentType(t *testing.T) {
	resp := preflightResponse()
	_, ok := resp.Headers["Content-Type"]
	assert.False(t, ok)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
}
