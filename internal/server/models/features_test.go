package models

import (
	"encoding/json"
	"testing"
)

func TestFeatureSet_ValueScanRoundTrip(t *testing.T) {
	in := NewUserFeatures()

	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}
	if v != "{read:activation_token}" {
		t.Fatalf("unexpected array literal: %v", v)
	}

	var out FeatureSet
	if err := out.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(out) != 1 || !out.Has(FeatureReadActivationToken) {
		t.Fatalf("unexpected set after scan: %v", out)
	}
}

func TestFeatureSet_ScanEmpty(t *testing.T) {
	var out FeatureSet
	if err := out.Scan("{}"); err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty set, got %v", out)
	}
}

func TestFeatureSet_ScanMultiple(t *testing.T) {
	var out FeatureSet
	if err := out.Scan("{read:activation_token,create:session}"); err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if !out.Has(FeatureReadActivationToken) || !out.Has(FeatureCreateSession) {
		t.Fatalf("missing features: %v", out)
	}
}

func TestFeatureSet_ScanUnsupportedType(t *testing.T) {
	var out FeatureSet
	if err := out.Scan(42); err == nil {
		t.Fatal("expected error scanning int")
	}
}

func TestFeatureSet_JSONShape(t *testing.T) {
	data, err := json.Marshal(ActivatedUserFeatures())
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(data) != `["create:session"]` {
		t.Fatalf("unexpected JSON: %s", data)
	}
}
