// Package event serializes registry activity as NEP-171 standard event
// lines. Every state-changing operation emits exactly one line, formatted
// as "EVENT_JSON:" followed by a single-line JSON object, so downstream
// indexers can tail the log without extra framing.
package event

import (
	"encoding/json"
	"fmt"
)

const (
	// Standard is the event standard identifier.
	Standard = "nep171"
	// Version is the emitted standard version.
	Version = "1.0.0"

	// LinePrefix marks an event line in the log stream.
	LinePrefix = "EVENT_JSON:"
)

// Event kinds.
const (
	KindMint     = "nft_mint"
	KindTransfer = "nft_transfer"
	KindBurn     = "nft_burn"
)

// Event is the outer NEP-171 envelope. Data holds a slice of payloads of
// the kind named by Event.
type Event struct {
	Standard string `json:"standard"`
	Version  string `json:"version"`
	Event    string `json:"event"`
	Data     any    `json:"data"`
}

// MintData is one mint payload entry.
type MintData struct {
	OwnerID  string   `json:"owner_id"`
	TokenIDs []string `json:"token_ids"`
	Memo     string   `json:"memo,omitempty"`
}

// TransferData is one transfer payload entry. AuthorizedID is set when the
// transfer was initiated by an approved account rather than the owner.
type TransferData struct {
	AuthorizedID string   `json:"authorized_id,omitempty"`
	OldOwnerID   string   `json:"old_owner_id"`
	NewOwnerID   string   `json:"new_owner_id"`
	TokenIDs     []string `json:"token_ids"`
	Memo         string   `json:"memo,omitempty"`
}

// BurnData is one burn payload entry.
type BurnData struct {
	AuthorizedID string   `json:"authorized_id,omitempty"`
	OwnerID      string   `json:"owner_id"`
	TokenIDs     []string `json:"token_ids"`
	Memo         string   `json:"memo,omitempty"`
}

// NftMint builds a mint event.
func NftMint(data ...MintData) *Event {
	return &Event{Standard: Standard, Version: Version, Event: KindMint, Data: data}
}

// NftTransfer builds a transfer event.
func NftTransfer(data ...TransferData) *Event {
	return &Event{Standard: Standard, Version: Version, Event: KindTransfer, Data: data}
}

// NftBurn builds a burn event.
func NftBurn(data ...BurnData) *Event {
	return &Event{Standard: Standard, Version: Version, Event: KindBurn, Data: data}
}

// Line renders the event as a log line: the prefix followed by compact JSON.
func (e *Event) Line() string {
	data, err := json.Marshal(e)
	if err != nil {
		// Payload types marshal without error; anything else is a bug.
		panic(fmt.Sprintf("event: marshal: %v", err))
	}
	return LinePrefix + string(data)
}

// ParamsLine renders a non-standard activity line for operations the NEP-171
// kinds do not cover, such as series creation or price changes. The params
// value must be a JSON-marshalable struct or map.
func ParamsLine(typ string, params any) string {
	data, err := json.Marshal(struct {
		Type   string `json:"type"`
		Params any    `json:"params"`
	}{Type: typ, Params: params})
	if err != nil {
		panic(fmt.Sprintf("event: marshal params: %v", err))
	}
	return string(data)
}
