package models

import "encoding/json"

// Envelope is the outer wrapper of every flespi JSON response.
// Exactly one of Result or Errors is present, never both.
type Envelope struct {
	Result json.RawMessage  `json:"result"`
	Errors []APIErrorDetail `json:"errors"`
}

// APIErrorDetail is one entry of the "errors" list returned on failure.
type APIErrorDetail struct {
	Reason string `json:"reason"`
}
