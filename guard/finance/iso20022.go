package finance

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ISOResult is the ISO 20022 verdict shape; structural problems are listed
// as violations.
type ISOResult struct {
	Verified   bool     `json:"verified"`
	Error      string   `json:"error,omitempty"`
	Violations []string `json:"violations,omitempty"`
}

// ISOGuard validates ISO 20022 payment messages serialized as JSON. The
// supported message types and their required top-level fields mirror the
// subset the gateway's callers produce.
type ISOGuard struct {
	currency *regexp.Regexp
}

// requiredFields per message type. Field paths are flat keys of the JSON
// object; nesting is out of scope for the structural check.
var requiredFields = map[string][]string{
	"pacs.008": {"msg_id", "creation_date", "amount", "currency", "debtor", "creditor"},
	"pacs.009": {"msg_id", "creation_date", "amount", "currency", "debtor_agent", "creditor_agent"},
	"pain.001": {"msg_id", "creation_date", "amount", "currency", "debtor", "creditor_account"},
	"camt.053": {"msg_id", "creation_date", "account", "balance"},
}

func NewISOGuard() (*ISOGuard, error) {
	re, err := regexp.Compile(`^[A-Z]{3}$`)
	if err != nil {
		return nil, fmt.Errorf("compile currency pattern: %w", err)
	}
	return &ISOGuard{currency: re}, nil
}

// VerifyPaymentMessage checks a JSON-encoded message against the structural
// rules for msgType.
func (g *ISOGuard) VerifyPaymentMessage(messageJSON, msgType string) ISOResult {
	fields, ok := requiredFields[msgType]
	if !ok {
		supported := make([]string, 0, len(requiredFields))
		for name := range requiredFields {
			supported = append(supported, name)
		}
		sort.Strings(supported)
		return ISOResult{Error: fmt.Sprintf("unsupported message type %q (supported: %s)", msgType, strings.Join(supported, ", "))}
	}

	var message map[string]any
	if err := json.Unmarshal([]byte(messageJSON), &message); err != nil {
		return ISOResult{Error: fmt.Sprintf("invalid message JSON: %v", err)}
	}

	var violations []string
	for _, field := range fields {
		if _, present := message[field]; !present {
			violations = append(violations, fmt.Sprintf("missing required field %q", field))
		}
	}
	if raw, present := message["amount"]; present {
		if amount, err := toFloat(raw); err != nil {
			violations = append(violations, fmt.Sprintf("amount is not numeric: %v", raw))
		} else if amount <= 0 {
			violations = append(violations, fmt.Sprintf("amount must be positive, got %v", raw))
		}
	}
	if raw, present := message["currency"]; present {
		code, _ := raw.(string)
		if !g.currency.MatchString(code) {
			violations = append(violations, fmt.Sprintf("currency %q is not an ISO 4217 alpha-3 code", code))
		}
	}

	if len(violations) > 0 {
		return ISOResult{
			Error:      fmt.Sprintf("%s message failed validation: %d violation(s)", msgType, len(violations)),
			Violations: violations,
		}
	}
	return ISOResult{Verified: true}
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case string:
		return strconv.ParseFloat(v, 64)
	case json.Number:
		return v.Float64()
	default:
		return 0, fmt.Errorf("unsupported amount type %T", raw)
	}
}
