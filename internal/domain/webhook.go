/**
 * @description
 * This file defines the shape of webhook events posted back by the payment
 * provider. Only the fields the reconciler actually reads are typed; the
 * full payload is retained as raw JSON so it can be attached to the matched
 * transaction as metadata.
 */

package domain

import "encoding/json"

// Webhook event discriminators handled by the reconciler.
const (
	EventChargeSuccess = "charge.success"
	EventChargeFailed  = "charge.failed"
)

// WebhookEvent is the top-level provider callback payload.
type WebhookEvent struct {
	Event string           `json:"event"`
	Data  WebhookEventData `json:"data"`
}

// WebhookEventData carries the charge details the reconciler needs. Amount
// is in the provider's minor currency unit (kobo). Raw holds the untyped
// `data` object for metadata attachment.
type WebhookEventData struct {
	Reference string          `json:"reference"`
	Amount    int64           `json:"amount"` // minor units (kobo)
	Customer  WebhookCustomer `json:"customer"`
	Raw       json.RawMessage `json:"-"`
}

// WebhookCustomer identifies the charged customer by provider business key.
type WebhookCustomer struct {
	CustomerCode string `json:"customer_code"`
}

// UnmarshalJSON decodes the typed fields and keeps the raw bytes alongside
// them so the reconciler can persist the original payload untouched.
func (d *WebhookEventData) UnmarshalJSON(b []byte) error {
	type alias WebhookEventData
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*d = WebhookEventData(a)
	d.Raw = json.RawMessage(append([]byte(nil), b...))
	return nil
}
