package gateway

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/tair/pantry/internal/pantry/domain"
	"github.com/tair/pantry/internal/pantry/usecase/command"
)

const msgInvalidBody = "Invalid request body"

func badRequest(msg string) error {
	return &command.ValidationError{Message: msg}
}

// decodeObject reads a JSON object body keyed by field name. An absent or null
// body is an empty object.
func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return map[string]json.RawMessage{}, nil
	}
	if body[0] != '{' {
		return nil, badRequest(msgInvalidBody)
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, badRequest(msgInvalidBody)
	}
	return fields, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// nameText renders a name value the way a loosely typed client expects: strings as
// is, numbers and true by their literal text. Null, zero and false read as empty.
func nameText(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}

	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", badRequest(msgInvalidBody)
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return "", nil
		}
		return t.String(), nil
	case bool:
		if !t {
			return "", nil
		}
		return strconv.FormatBool(t), nil
	default:
		return "", badRequest("name must be a string")
	}
}

func optionalString(field string, raw json.RawMessage) (*string, error) {
	if isNull(raw) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, badRequest(field + " must be a string")
	}
	return &s, nil
}

func optionalNumber(field string, raw json.RawMessage) (*float64, error) {
	if isNull(raw) {
		return nil, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, badRequest(field + " must be a number")
	}
	return &f, nil
}

func parseCreate(ownerID string, body []byte) (command.CreateItemCommand, error) {
	cmd := command.CreateItemCommand{OwnerID: ownerID}

	fields, err := decodeObject(body)
	if err != nil {
		return cmd, err
	}

	if cmd.Name, err = nameText(fields["name"]); err != nil {
		return cmd, err
	}
	if cmd.Quantity, err = optionalNumber("quantity", fields["quantity"]); err != nil {
		return cmd, err
	}
	if cmd.Unit, err = optionalString("unit", fields["unit"]); err != nil {
		return cmd, err
	}
	if cmd.Category, err = optionalString("category", fields["category"]); err != nil {
		return cmd, err
	}
	if cmd.ExpiryDate, err = optionalString("expiryDate", fields["expiryDate"]); err != nil {
		return cmd, err
	}
	return cmd, nil
}

// parsePatch keeps only the whitelisted keys. A key counts as provided whenever it
// is present, including with a null value.
func parsePatch(body []byte) (domain.ItemPatch, error) {
	var patch domain.ItemPatch

	fields, err := decodeObject(body)
	if err != nil {
		return patch, err
	}

	if raw, ok := fields["name"]; ok {
		name, err := nameText(raw)
		if err != nil {
			return patch, err
		}
		patch.Name = &name
	}
	if raw, ok := fields["quantity"]; ok {
		v, err := optionalNumber("quantity", raw)
		if err != nil {
			return patch, err
		}
		patch.Quantity = domain.Field[float64]{Present: true, Value: v}
	}

	for _, f := range []struct {
		key string
		dst *domain.Field[string]
	}{
		{"unit", &patch.Unit},
		{"category", &patch.Category},
		{"expiryDate", &patch.ExpiryDate},
	} {
		raw, ok := fields[f.key]
		if !ok {
			continue
		}
		v, err := optionalString(f.key, raw)
		if err != nil {
			return patch, err
		}
		*f.dst = domain.Field[string]{Present: true, Value: v}
	}

	return patch, nil
}
