package codec

import "encoding/json"

// JSON is the standard-library JSON codec. Manifests are small map-like
// structures, for which JSON is stable and portable; persisted manifests
// always record the codec name so they can be validated on load.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }
