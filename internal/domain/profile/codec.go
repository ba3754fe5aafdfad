package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Encode produces the persisted form of a profile.
func Encode(p *Profile) ([]byte, error) {
	c := p.Clone()
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return data, nil
}

// Decode parses a persisted profile. Empty input yields the empty profile.
// Malformed input also yields the empty profile, together with the parse
// error so the caller can log it; callers are expected to carry on with the
// returned profile either way.
func Decode(data []byte) (*Profile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return New(), nil
	}
	p := &Profile{}
	if err := json.Unmarshal(data, p); err != nil {
		return New(), fmt.Errorf("decode profile: %w", err)
	}
	p.normalize()
	return p, nil
}
