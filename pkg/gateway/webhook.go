package gateway

import (
	"io"
	"net/http"
	"strconv"

	"github.com/coinpay/coinpay-go/pkg/logging"
	"github.com/coinpay/coinpay-go/pkg/signing"
)

// Webhook override headers. The gateway normally embeds sign and
// timestamp in the body; when these headers are present they take
// precedence, matching the verifier's supplied-parameter semantics.
const (
	HeaderSignature = "X-Coinpay-Signature"
	HeaderTimestamp = "X-Coinpay-Timestamp"
)

// EventHandler consumes a verified webhook event.
type EventHandler func(event *signing.WebhookEvent)

// WebhookHandler returns an http.Handler that verifies inbound
// notifications and forwards the parsed event to handle. Requests that
// fail verification get a 401 with no body detail; verified requests get
// a 200 after handle returns.
func WebhookHandler(verifier *signing.Verifier, handle EventHandler, logger logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Warn("failed to read webhook body", logging.Err(err))
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		suppliedSig := r.Header.Get(HeaderSignature)
		var suppliedTS int64
		if raw := r.Header.Get(HeaderTimestamp); raw != "" {
			suppliedTS, _ = strconv.ParseInt(raw, 10, 64)
		}

		event := verifier.Parse(body, suppliedSig, suppliedTS)
		if event == nil {
			logger.Warn("webhook verification failed",
				logging.String("remote", r.RemoteAddr),
			)
			http.Error(w, "invalid signature", http.StatusUnauthorized)
			return
		}

		logger.Info("webhook accepted",
			logging.String("notify_type", event.NotifyType),
			logging.Int64("timestamp", event.Timestamp),
		)

		handle(event)
		w.WriteHeader(http.StatusOK)
	})
}
