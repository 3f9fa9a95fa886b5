package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintLine(t *testing.T) {
	ev := NftMint(MintData{OwnerID: "bob", TokenIDs: []string{"0", "1"}})
	assert.Equal(t,
		`EVENT_JSON:{"standard":"nep171","version":"1.0.0","event":"nft_mint","data":[{"owner_id":"bob","token_ids":["0","1"]}]}`,
		ev.Line())
}

func TestMintLineBatch(t *testing.T) {
	ev := NftMint(
		MintData{OwnerID: "bob", TokenIDs: []string{"0", "1"}},
		MintData{OwnerID: "alice", TokenIDs: []string{"2", "3"}, Memo: "has memo"},
	)
	assert.Equal(t,
		`EVENT_JSON:{"standard":"nep171","version":"1.0.0","event":"nft_mint","data":[{"owner_id":"bob","token_ids":["0","1"]},{"owner_id":"alice","token_ids":["2","3"],"memo":"has memo"}]}`,
		ev.Line())
}

func TestTransferLine(t *testing.T) {
	ev := NftTransfer(TransferData{
		OldOwnerID: "bob",
		NewOwnerID: "alice",
		TokenIDs:   []string{"0", "1"},
	})
	assert.Equal(t,
		`EVENT_JSON:{"standard":"nep171","version":"1.0.0","event":"nft_transfer","data":[{"old_owner_id":"bob","new_owner_id":"alice","token_ids":["0","1"]}]}`,
		ev.Line())
}

func TestTransferLineAuthorized(t *testing.T) {
	ev := NftTransfer(
		TransferData{
			AuthorizedID: "4",
			OldOwnerID:   "alice",
			NewOwnerID:   "bob",
			TokenIDs:     []string{"2", "3"},
			Memo:         "has memo",
		},
		TransferData{
			OldOwnerID: "bob",
			NewOwnerID: "alice",
			TokenIDs:   []string{"0", "1"},
		},
	)
	assert.Equal(t,
		`EVENT_JSON:{"standard":"nep171","version":"1.0.0","event":"nft_transfer","data":[{"authorized_id":"4","old_owner_id":"alice","new_owner_id":"bob","token_ids":["2","3"],"memo":"has memo"},{"old_owner_id":"bob","new_owner_id":"alice","token_ids":["0","1"]}]}`,
		ev.Line())
}

func TestBurnLine(t *testing.T) {
	ev := NftBurn(BurnData{OwnerID: "bob", TokenIDs: []string{"0", "1"}})
	assert.Equal(t,
		`EVENT_JSON:{"standard":"nep171","version":"1.0.0","event":"nft_burn","data":[{"owner_id":"bob","token_ids":["0","1"]}]}`,
		ev.Line())
}

func TestBurnLineAuthorized(t *testing.T) {
	ev := NftBurn(
		BurnData{
			AuthorizedID: "4",
			OwnerID:      "alice",
			TokenIDs:     []string{"2", "3"},
			Memo:         "has memo",
		},
		BurnData{OwnerID: "bob", TokenIDs: []string{"0", "1"}},
	)
	assert.Equal(t,
		`EVENT_JSON:{"standard":"nep171","version":"1.0.0","event":"nft_burn","data":[{"authorized_id":"4","owner_id":"alice","token_ids":["2","3"],"memo":"has memo"},{"owner_id":"bob","token_ids":["0","1"]}]}`,
		ev.Line())
}

func TestParamsLine(t *testing.T) {
	line := ParamsLine("nft_set_series_price", map[string]string{"token_series_id": "1"})
	assert.Equal(t, `{"type":"nft_set_series_price","params":{"token_series_id":"1"}}`, line)
}

func TestMemSink(t *testing.T) {
	sink := NewMemSink()
	sink.Emit(NftMint(MintData{OwnerID: "bob", TokenIDs: []string{"1:1"}}))
	sink.EmitParams("nft_create_series", map[string]string{"token_series_id": "1"})

	lines := sink.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "nft_mint")
	assert.Contains(t, lines[1], "nft_create_series")

	sink.Reset()
	assert.Empty(t, sink.Lines())
}
