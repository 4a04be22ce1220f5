package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Feature is a capability granted to a user and checked by endpoint
// handlers. The set of features is closed: accounts hold exactly one of
// the two canonical sets below.
type Feature string

const (
	// FeatureReadActivationToken lets a fresh account redeem its activation token.
	FeatureReadActivationToken Feature = "read:activation_token"

	// FeatureCreateSession lets an activated account log in.
	FeatureCreateSession Feature = "create:session"
)

// FeatureSet is a user's capabilities. It is persisted as a Postgres
// text[] column and rendered in JSON as an array of strings.
type FeatureSet []Feature

// NewUserFeatures is the set assigned at registration.
func NewUserFeatures() FeatureSet {
	return FeatureSet{FeatureReadActivationToken}
}

// ActivatedUserFeatures is the set assigned by activation redemption.
func ActivatedUserFeatures() FeatureSet {
	return FeatureSet{FeatureCreateSession}
}

// Has reports whether the set contains the given feature.
func (f FeatureSet) Has(feature Feature) bool {
	for _, v := range f {
		if v == feature {
			return true
		}
	}
	return false
}

// Value encodes the set as a Postgres array literal.
func (f FeatureSet) Value() (driver.Value, error) {
	if len(f) == 0 {
		return "{}", nil
	}
	parts := make([]string, len(f))
	for i, v := range f {
		parts[i] = string(v)
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// Scan parses a Postgres array literal. Feature values contain no commas,
// quotes, or braces, so the plain form is sufficient.
func (f *FeatureSet) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*f = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into FeatureSet", src)
	}

	raw = strings.TrimPrefix(raw, "{")
	raw = strings.TrimSuffix(raw, "}")
	if raw == "" {
		*f = FeatureSet{}
		return nil
	}

	parts := strings.Split(raw, ",")
	set := make(FeatureSet, 0, len(parts))
	for _, p := range parts {
		set = append(set, Feature(strings.TrimSpace(p)))
	}
	*f = set
	return nil
}
