package signing

import (
	"github.com/coinpay/coinpay-go/pkg/canonical"
)

// Envelope is the signed unit handed to the transport for an outbound
// request. Field order in the JSON body matches what the gateway
// expects; Data marshals with its keys in insertion order.
type Envelope struct {
	Sign      string             `json:"sign"`
	Timestamp int64              `json:"timestamp"`
	Nonce     string             `json:"nonce"`
	Data      *canonical.Payload `json:"data"`
}

// WebhookEvent is a verified inbound notification. All fields are taken
// verbatim from the webhook document, not recomputed during
// verification.
type WebhookEvent struct {
	Sign       string             `json:"sign"`
	Timestamp  int64              `json:"timestamp"`
	Nonce      string             `json:"nonce"`
	NotifyType string             `json:"notifyType"`
	Data       *canonical.Payload `json:"data"`
}
