package handler

import "encoding/json"

// marshalBody re-encodes an already-decoded JSON object, so handlers can
// validate shape via json.Unmarshal into a concrete type before passing raw
// bytes down to the service layer.
func marshalBody(v map[string]interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// marshalPatch re-encodes an already-decoded JSON Patch array.
func marshalPatch(v []interface{}) ([]byte, error) {
	return json.Marshal(v)
}
