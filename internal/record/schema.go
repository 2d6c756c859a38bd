package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/procuredocs/extractor/constants"
)

// BuildDocumentSchema returns a JSON-Schema (draft 2020-12 subset) for the
// output document as a generic map. Optional fields accept either their
// native shape or the literal placeholder.
func BuildDocumentSchema() map[string]any {
	amount := map[string]any{"type": "string", "pattern": `^-?\d+(\.\d+)?$`}

	lineItem := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"description": orPlaceholder(map[string]any{"type": "string"}),
			"quantity":    orPlaceholder(amount),
			"unit_price":  orPlaceholder(amount),
			"amount":      orPlaceholder(amount),
		},
		"required": []string{"description", "quantity", "unit_price", "amount"},
	}

	turnoverEntry := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"year":   map[string]any{"type": "string", "pattern": `^\d{4}$`},
			"amount": amount,
		},
		"required": []string{"year", "amount"},
	}

	eligibility := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"is_eligible": orPlaceholder(map[string]any{"type": "boolean"}),
			"reason":      map[string]any{"type": "string"},
		},
	}

	props := map[string]any{
		"document_type":         map[string]any{"type": "string", "enum": constants.DocTypeStrings()},
		"vendor_name":           orPlaceholder(map[string]any{"type": "string"}),
		"vendor_address":        orPlaceholder(map[string]any{"type": "string"}),
		"tax_id":                orPlaceholder(map[string]any{"type": "string"}),
		"invoice_number":        orPlaceholder(map[string]any{"type": "string"}),
		"po_number":             orPlaceholder(map[string]any{"type": "string"}),
		"invoice_date":          orPlaceholder(map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`}),
		"delivery_date":         orPlaceholder(map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`}),
		"total_amount":          orPlaceholder(amount),
		"currency":              orPlaceholder(map[string]any{"type": "string", "enum": []string{"USD", "INR"}}),
		"turnover_last_3_years": map[string]any{"type": "array", "items": turnoverEntry, "maxItems": 3},
		"budget_requirement":    orPlaceholder(map[string]any{"type": "string"}),
		"eligibility_check":     eligibility,
		"line_items":            map[string]any{"type": "array", "items": lineItem},
		"raw_text":              map[string]any{"type": "string", "maxLength": constants.RawTextLimit},
		"method_used":           map[string]any{"type": "string", "enum": []string{constants.MethodPDFText, constants.MethodVision}},
	}

	required := make([]string, 0, len(props))
	for k := range props {
		required = append(required, k)
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}

func orPlaceholder(prop map[string]any) map[string]any {
	return map[string]any{
		"oneOf": []any{prop, map[string]any{"const": constants.Placeholder}},
	}
}

// ValidateAgainstSchema validates "data" against "schemaMap".
func ValidateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
