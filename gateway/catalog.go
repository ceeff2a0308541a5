package gateway

import (
	"context"
	"fmt"
	"reflect"

	mcpschema "github.com/viant/mcp-protocol/schema"

	"github.com/qwed-ai/qwed-mcp/gateway/capability"
	"github.com/qwed-ai/qwed-mcp/guard/codeguard"
	"github.com/qwed-ai/qwed-mcp/guard/commerce"
	"github.com/qwed-ai/qwed-mcp/guard/legal"
	"github.com/qwed-ai/qwed-mcp/guard/logicguard"
	"github.com/qwed-ai/qwed-mcp/guard/mathguard"
	"github.com/qwed-ai/qwed-mcp/guard/sqlguard"
	"github.com/qwed-ai/qwed-mcp/internal/conv"
)

// toolEntry is one catalogue row: static MCP metadata, the capability the
// tool depends on (empty for always-available tools) and the backend
// invocation.
type toolEntry struct {
	metadata mcpschema.Tool
	requires capability.ID
	invoke   func(ctx context.Context, args map[string]any) (any, error)
}

// Argument shapes. A field without omitempty is required; omitempty marks it
// optional in the derived schema.
type mathArgs struct {
	Expression    string `json:"expression"`
	ClaimedResult string `json:"claimed_result"`
	Operation     string `json:"operation,omitempty"`
}

type logicArgs struct {
	Premises   []string `json:"premises"`
	Conclusion string   `json:"conclusion"`
}

type codeArgs struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

type sqlArgs struct {
	Query         string   `json:"query"`
	AllowedTables []string `json:"allowed_tables,omitempty"`
}

type bankingArgs struct {
	Scenario  string `json:"scenario"`
	LLMOutput string `json:"llm_output"`
}

type isoArgs struct {
	MessageJSON string `json:"message_json"`
	MsgType     string `json:"msg_type"`
}

type commerceArgs struct {
	CartJSON string `json:"cart_json"`
}

type deadlineArgs struct {
	SigningDate     string `json:"signing_date"`
	Term            string `json:"term"`
	ClaimedDeadline string `json:"claimed_deadline"`
}

type citationArgs struct {
	Citation string `json:"citation"`
}

type liabilityArgs struct {
	ContractValue float64 `json:"contract_value"`
	CapPercentage float64 `json:"cap_percentage"`
	ClaimedCap    float64 `json:"claimed_cap"`
}

type jurisdictionArgs struct {
	GoverningLaw     string   `json:"governing_law"`
	Forum            string   `json:"forum"`
	PartiesCountries []string `json:"parties_countries"`
}

type statuteArgs struct {
	ClaimType    string `json:"claim_type"`
	Jurisdiction string `json:"jurisdiction"`
	IncidentDate string `json:"incident_date"`
	FilingDate   string `json:"filing_date"`
}

// mathOperations enumerates the legal values of the math tool's operation
// field.
var mathOperations = []interface{}{"derivative", "integral", "simplify", "solve", "evaluate"}

// registerTools builds the fixed tool catalogue. Every tool is registered
// regardless of capability availability so that listing is complete; dispatch
// refuses invocation when the required backend is absent.
func (s *Service) registerTools() error {
	math := mathguard.New()
	logic := logicguard.New()

	codeGuard, _ := handleAs[*codeguard.Guard](s.capabilities, capability.CodeSafety)
	sqlGuard, _ := handleAs[*sqlguard.Guard](s.capabilities, capability.SQLSafety)
	fin, _ := handleAs[*financeBackend](s.capabilities, capability.Finance)
	commerceGuard, _ := handleAs[*commerce.Verifier](s.capabilities, capability.Commerce)
	legalGuards, _ := handleAs[*legal.Guards](s.capabilities, capability.Legal)

	catalogue := []struct {
		name        string
		description string
		requires    capability.ID
		sample      any
		invoke      func(ctx context.Context, args map[string]any) (any, error)
	}{
		{
			name:        "verify_math",
			description: "Verify a claimed result of a symbolic math operation (derivative, integral, simplify, solve or evaluate) over a single-variable polynomial expression.",
			sample:      &mathArgs{},
			invoke: func(ctx context.Context, args map[string]any) (any, error) {
				var in mathArgs
				if err := conv.Convert(args, &in); err != nil {
					return nil, err
				}
				return math.Verify(in.Expression, in.ClaimedResult, in.Operation), nil
			},
		},
		{
			name:        "verify_logic",
			description: "Check whether a conclusion follows from a set of propositional premises.",
			sample:      &logicArgs{},
			invoke: func(ctx context.Context, args map[string]any) (any, error) {
				var in logicArgs
				if err := conv.Convert(args, &in); err != nil {
					return nil, err
				}
				return logic.Verify(in.Premises, in.Conclusion), nil
			},
		},
		{
			name:        "verify_code",
			description: "Scan a code snippet for known dangerous constructs in the given language.",
			requires:    capability.CodeSafety,
			sample:      &codeArgs{},
			invoke: func(ctx context.Context, args map[string]any) (any, error) {
				var in codeArgs
				if err := conv.Convert(args, &in); err != nil {
					return nil, err
				}
				return codeGuard.VerifySafety(in.Code, in.Language), nil
			},
		},
		{
			name:        "verify_sql",
			description: "Check a SQL query for injection patterns and optionally restrict table access to an allow list.",
			requires:    capability.SQLSafety,
			sample:      &sqlArgs{},
			invoke: func(ctx context.Context, args map[string]any) (any, error) {
				var in sqlArgs
				if err := conv.Convert(args, &in); err != nil {
					return nil, err
				}
				return sqlGuard.VerifyQuery(in.Query, in.AllowedTables), nil
			},
		},
		{
			name:        "verify_banking_compliance",
			description: "Check model output for a banking scenario against known compliance traps.",
			requires:    capability.Finance,
			sample:      &bankingArgs{},
			invoke: func(ctx context.Context, args map[string]any) (any, error) {
				var in bankingArgs
				if err := conv.Convert(args, &in); err != nil {
					return nil, err
				}
				return fin.compliance.VerifyCompliance(in.Scenario, in.LLMOutput), nil
			},
		},
		{
			name:        "verify_iso_20022",
			description: "Validate an ISO 20022 payment message (pacs.008, pacs.009, pain.001, camt.053) serialized as JSON.",
			requires:    capability.Finance,
			sample:      &isoArgs{},
			invoke: func(ctx context.Context, args map[string]any) (any, error) {
				var in isoArgs
				if err := conv.Convert(args, &in); err != nil {
					return nil, err
				}
				return fin.iso.VerifyPaymentMessage(in.MessageJSON, in.MsgType), nil
			},
		},
		{
			name:        "verify_commerce_transaction",
			description: "Re-derive line totals, subtotal and total of a checkout cart and compare them to the claimed amounts.",
			requires:    capability.Commerce,
			sample:      &commerceArgs{},
			invoke: func(ctx context.Context, args map[string]any) (any, error) {
				var in commerceArgs
				if err := conv.Convert(args, &in); err != nil {
					return nil, err
				}
				return commerceGuard.VerifyCheckout(in.CartJSON), nil
			},
		},
		{
			name:        "verify_legal_deadline",
			description: "Verify a claimed contract deadline against the signing date and the contractual term.",
			requires:    capability.Legal,
			sample:      &deadlineArgs{},
			invoke: func(ctx context.Context, args map[string]any) (any, error) {
				var in deadlineArgs
				if err := conv.Convert(args, &in); err != nil {
					return nil, err
				}
				return legalGuards.Deadline.Verify(in.SigningDate, in.Term, in.ClaimedDeadline), nil
			},
		},
		{
			name:        "verify_legal_citation",
			description: "Structurally validate a case citation in the common volume/reporter/page form.",
			requires:    capability.Legal,
			sample:      &citationArgs{},
			invoke: func(ctx context.Context, args map[string]any) (any, error) {
				var in citationArgs
				if err := conv.Convert(args, &in); err != nil {
					return nil, err
				}
				return legalGuards.Citation.Verify(in.Citation), nil
			},
		},
		{
			name:        "verify_legal_liability",
			description: "Verify a claimed liability cap against the contract value and cap percentage.",
			requires:    capability.Legal,
			sample:      &liabilityArgs{},
			invoke: func(ctx context.Context, args map[string]any) (any, error) {
				var in liabilityArgs
				if err := conv.Convert(args, &in); err != nil {
					return nil, err
				}
				return legalGuards.Liability.VerifyCap(in.ContractValue, in.CapPercentage, in.ClaimedCap), nil
			},
		},
		{
			name:        "verify_legal_jurisdiction",
			description: "Check that governing law, forum and party locations of a contract are mutually compatible.",
			requires:    capability.Legal,
			sample:      &jurisdictionArgs{},
			invoke: func(ctx context.Context, args map[string]any) (any, error) {
				var in jurisdictionArgs
				if err := conv.Convert(args, &in); err != nil {
					return nil, err
				}
				return legalGuards.Jurisdiction.VerifyChoiceOfLaw(in.PartiesCountries, in.GoverningLaw, in.Forum), nil
			},
		},
		{
			name:        "verify_legal_statute",
			description: "Check whether a claim was filed within the statute of limitations for its type and jurisdiction.",
			requires:    capability.Legal,
			sample:      &statuteArgs{},
			invoke: func(ctx context.Context, args map[string]any) (any, error) {
				var in statuteArgs
				if err := conv.Convert(args, &in); err != nil {
					return nil, err
				}
				return legalGuards.Statute.Verify(in.ClaimType, in.Jurisdiction, in.IncidentDate, in.FilingDate), nil
			},
		},
	}

	for _, item := range catalogue {
		registerArgType(reflect.TypeOf(item.sample).Elem())
		var inputSchema mcpschema.ToolInputSchema
		if err := inputSchema.Load(item.sample); err != nil {
			return fmt.Errorf("failed to build input schema for %s: %w", item.name, err)
		}
		if item.name == "verify_math" {
			if prop, ok := inputSchema.Properties["operation"]; ok {
				prop["enum"] = mathOperations
			}
		}
		description := item.description
		entry := &toolEntry{
			metadata: mcpschema.Tool{
				Name:        item.name,
				Description: &description,
				InputSchema: inputSchema,
			},
			requires: item.requires,
			invoke:   item.invoke,
		}
		s.tools.Set(item.name, entry)
		s.toolOrder = append(s.toolOrder, item.name)
	}
	return nil
}

// handleAs fetches a typed capability handle; the bool is false when the
// capability is unavailable or the handle has an unexpected type.
func handleAs[T any](table *capability.Table, id capability.ID) (T, bool) {
	var zero T
	raw, ok := table.Handle(id)
	if !ok {
		return zero, false
	}
	typed, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
