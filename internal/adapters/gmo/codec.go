package gmo

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kevin07696/payment-reconciler/internal/domain"
)

// Field names shared by both channels
const (
	FieldResult  = "Result"
	FieldErrCode = "ErrCode"
	FieldErrInfo = "ErrInfo"
	FieldShopID  = "ShopID"
	FieldStatus  = "Status"
	FieldOrderID = "OrderID"
	FieldAmount  = "Amount"

	// transactionResultKey wraps the result object inside a return token
	transactionResultKey = "transactionresult"
)

// tokenAlphabet maps the gateway's URL-safe alphabet back to standard base64
var tokenAlphabet = strings.NewReplacer("-", "+", "_", "/", ".", "=")

// DecodeReturnToken decodes the return-channel token
// "<payload>.<hash>" into a GatewayResult.
//
// The hash half is returned untouched in Fields["_hash"]; it is not verified.
// Every failure is reported as domain.ErrMalformedPayload.
func DecodeReturnToken(token string) (*domain.GatewayResult, error) {
	payload, hash, found := strings.Cut(strings.TrimSpace(token), ".")
	if !found || payload == "" {
		return nil, malformed("token has no hash segment", nil)
	}

	// Padding may have been cut off by the split, so decode unpadded.
	std := strings.TrimRight(tokenAlphabet.Replace(payload), "=")
	raw, err := base64.RawStdEncoding.DecodeString(std)
	if err != nil {
		return nil, malformed("payload is not base64", err)
	}

	var envelope map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&envelope); err != nil {
		return nil, malformed("payload is not a JSON object", err)
	}

	body, ok := envelope[transactionResultKey]
	if !ok {
		return nil, malformed("payload has no transactionresult", nil)
	}

	fields, err := flattenObject(body)
	if err != nil {
		return nil, malformed("transactionresult is not an object", err)
	}
	if len(fields) == 0 || fields[FieldResult] == "" {
		return nil, malformed("transactionresult has no Result", nil)
	}

	fields["_hash"] = strings.TrimLeft(hash, ".")

	return &domain.GatewayResult{
		Channel: domain.ChannelReturn,
		Status:  strings.ToUpper(fields[FieldResult]),
		ErrCode: fields[FieldErrCode],
		ErrInfo: fields[FieldErrInfo],
		OrderID: fields[FieldOrderID],
		Fields:  fields,
	}, nil
}

// ParseWebhookFields turns the flat webhook form into a GatewayResult.
// The first value of each field wins. An unparsable Amount is left nil.
func ParseWebhookFields(form map[string][]string) (*domain.GatewayResult, error) {
	fields := make(map[string]string, len(form))
	for key, values := range form {
		if len(values) == 0 {
			continue
		}
		fields[key] = strings.TrimSpace(values[0])
	}
	if len(fields) == 0 {
		return nil, malformed("notification has no fields", nil)
	}

	result := &domain.GatewayResult{
		Channel: domain.ChannelWebhook,
		Status:  fields[FieldStatus],
		ErrCode: fields[FieldErrCode],
		ErrInfo: fields[FieldErrInfo],
		OrderID: fields[FieldOrderID],
		ShopID:  fields[FieldShopID],
		Fields:  fields,
	}

	if raw := fields[FieldAmount]; raw != "" {
		if amount, err := decimal.NewFromString(raw); err == nil {
			result.Amount = &amount
		}
	}

	return result, nil
}

// flattenObject renders every member of a JSON object as a string.
// Nested values keep their JSON text.
func flattenObject(raw json.RawMessage) (map[string]string, error) {
	var members map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&members); err != nil {
		return nil, err
	}
	if members == nil {
		return nil, fmt.Errorf("null object")
	}

	fields := make(map[string]string, len(members))
	for key, value := range members {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			fields[key] = v
		case json.Number:
			fields[key] = v.String()
		case bool:
			fields[key] = fmt.Sprintf("%t", v)
		default:
			text, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			fields[key] = string(text)
		}
	}
	return fields, nil
}

func malformed(message string, err error) error {
	if err == nil {
		return domain.NewDomainError(domain.ErrorCodeMalformedPayload, message)
	}
	return domain.WrapError(domain.ErrorCodeMalformedPayload, message, err)
}
