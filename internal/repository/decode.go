package repository

import (
	"encoding/json"
	"errors"
	"net/url"

	"github.com/deppfellow/mentorship/internal/errs"
	"github.com/deppfellow/mentorship/internal/validation"
)

// ErrUnknownRequestType is returned by Decode when the payload carries no
// reqType or one the catalog does not know.
var ErrUnknownRequestType = errors.New("no request type or invalid request type")

// Payload is an untyped request bag: the fields of a JSON body or of a query
// string, before a request type has been chosen. A nil Payload is valid and
// has no reqType.
type Payload map[string]json.RawMessage

// PayloadFromJSON decodes a JSON object. An empty body is a nil Payload.
// Anything that is not a JSON object is an invalid payload.
func PayloadFromJSON(body []byte) (Payload, error) {
	if len(body) == 0 {
		return nil, nil
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errs.NewInvalidPayloadError("Invalid payload: body must be a JSON object", nil)
	}
	return payload, nil
}

// PayloadFromQuery converts query parameters: a key given once becomes a
// string, a repeated key becomes an array of strings.
func PayloadFromQuery(values url.Values) Payload {
	payload := make(Payload, len(values))
	for key, vals := range values {
		var raw []byte
		if len(vals) == 1 {
			raw, _ = json.Marshal(vals[0])
		} else {
			raw, _ = json.Marshal(vals)
		}
		payload[key] = raw
	}
	return payload
}

// ReqType reads the reqType discriminator. It is empty when missing or not
// a string.
func (p Payload) ReqType() ReqType {
	raw, ok := p["reqType"]
	if !ok {
		return ""
	}

	var reqType string
	if err := json.Unmarshal(raw, &reqType); err != nil {
		return ""
	}
	return ReqType(reqType)
}

// newRequest returns an empty request for reqType. Every ReqType has exactly
// one case here.
func newRequest(reqType ReqType) (Request, bool) {
	switch reqType {
	case ReqInit:
		return &Init{}, true
	case ReqWipe:
		return &Wipe{}, true
	case ReqAddUser:
		return &AddUser{}, true
	case ReqAddMentee:
		return &AddMentee{}, true
	case ReqAddMentor:
		return &AddMentor{}, true
	case ReqAddOrg:
		return &AddOrg{}, true
	case ReqGetMentee:
		return &GetMentee{}, true
	case ReqGetMentor:
		return &GetMentor{}, true
	case ReqGetOrg:
		return &GetOrg{}, true
	case ReqGetOrgMentees:
		return &GetOrgMentees{}, true
	case ReqGetOrgMentors:
		return &GetOrgMentors{}, true
	case ReqSetMentor:
		return &SetMentor{}, true
	default:
		return nil, false
	}
}

// Decode resolves the payload's reqType to exactly one catalog entry and
// fills it from the payload.
//
// Errors:
//   - ErrUnknownRequestType when reqType is missing or unknown
//   - an INVALID_PAYLOAD *errs.HTTPError when fields are malformed or missing
func Decode(payload Payload) (Request, error) {
	req, ok := newRequest(payload.ReqType())
	if !ok {
		return nil, ErrUnknownRequestType
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.NewInvalidPayloadError("Invalid payload: "+err.Error(), nil)
	}

	if err := validation.DecodeAndValidate(body, req); err != nil {
		return nil, err
	}
	return req, nil
}

// DecodeSetSkills decodes the /api/user/set-skills body.
//
// The body is a JSON object, or a JSON string whose content is that object.
func DecodeSetSkills(body []byte) (*SetSkills, error) {
	var inner string
	if err := json.Unmarshal(body, &inner); err == nil {
		body = []byte(inner)
	}

	req := &SetSkills{}
	if err := validation.DecodeAndValidate(body, req); err != nil {
		return nil, err
	}
	return req, nil
}
