package resource

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/BruksfildServices01/certhub/internal/httperr"
)

// Payload is the typed body of a resource. Create submissions decode into a
// fresh Payload; update submissions are patches overlaid onto the current one.
type Payload interface {
	ResourceType() Type
	// UniqueKey is the value that must be unique across live and pending
	// records of the type, or "" when the type has none.
	UniqueKey() string
	Normalize()
}

// Reference points at other resources a payload depends on.
type Reference struct {
	Type Type
	IDs  []uint
}

// Referencer is implemented by payloads that point at other resources.
type Referencer interface {
	References() []Reference
}

// New returns an empty payload for t.
func New(t Type) (Payload, error) {
	switch t {
	case TypeField:
		return &FieldPayload{}, nil
	case TypeCertification:
		return &CertificationPayload{}, nil
	case TypeTraining:
		return &TrainingPayload{}, nil
	case TypeCompany:
		return &CompanyPayload{}, nil
	case TypeCompanyCertification:
		return &CompanyCertificationPayload{}, nil
	case TypeCompanyTraining:
		return &CompanyTrainingPayload{}, nil
	case TypePage:
		return &PagePayload{}, nil
	default:
		return nil, httperr.ErrBusinessf(httperr.CodeUnknownResourceType, "unknown resource type %q", t)
	}
}

// Decode parses raw as a complete payload of type t. Unknown keys are rejected.
func Decode(t Type, raw []byte) (Payload, error) {
	p, err := New(t)
	if err != nil {
		return nil, err
	}
	if err := ApplyPatch(p, raw); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyPatch overlays the keys present in patch onto p. Arrays replace,
// nested objects merge.
func ApplyPatch(p Payload, patch []byte) error {
	dec := json.NewDecoder(bytes.NewReader(patch))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		return httperr.ErrBusinessf(httperr.CodeValidation, "invalid %s data: %v", p.ResourceType(), err)
	}
	if dec.More() {
		return httperr.ErrBusinessf(httperr.CodeValidation, "invalid %s data: trailing content", p.ResourceType())
	}
	return nil
}

// IsEmpty reports whether raw carries no data (absent or JSON null).
func IsEmpty(raw []byte) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

// PatchKeys returns the top-level keys of a JSON object patch.
func PatchKeys(raw []byte) ([]string, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys, nil
}

// UniqueIDs drops duplicate ids, keeping first-seen order.
func UniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
