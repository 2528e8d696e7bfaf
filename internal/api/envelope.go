package api

import (
	"encoding/json"

	apperrors "adminconsole/pkg/errors"
)

// Envelope is the uniform response wrapper the admin service uses. Some list
// endpoints put pagination fields at the top level, others inside data; both
// sets are exposed here and the adapters pick the ones their endpoint uses.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`

	Results    int `json:"results,omitempty"`
	Page       int `json:"page,omitempty"`
	Limit      int `json:"limit,omitempty"`
	TotalPages int `json:"totalPages,omitempty"`

	Data json.RawMessage `json:"data,omitempty"`
}

// OK reports whether the top-level status discriminator signals success.
func (e *Envelope) OK() bool {
	return e.Status == "success" || e.Status == "ok"
}

// DecodeData unmarshals the data payload into out. A missing payload is a
// malformed envelope, not a crash.
func (e *Envelope) DecodeData(out interface{}) error {
	if len(e.Data) == 0 {
		return apperrors.ErrMalformedEnvelope
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return apperrors.Wrap(apperrors.ErrMalformedEnvelope, err.Error())
	}
	return nil
}
