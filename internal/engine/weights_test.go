package engine

import "testing"

func TestWeights(t *testing.T) {
	w := DefaultWeights()
	if err := w.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	if err := w.Set("PCentral", " 321 "); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _ := w.Get("pcentral"); v != 321 || w.CenterBonus != 321 {
		t.Errorf("pcentral = %d, want 321", v)
	}
	if err := w.Set("hattack", "-20"); err != nil || w.AttackScale != -20 {
		t.Errorf("Set(hattack) = %v, AttackScale %d", err, w.AttackScale)
	}

	for _, tc := range []struct{ name, value string }{
		{"nosuch", "1"},
		{"mobility", "abc"},
		{"randomize", "-1"},
		{"kface", "99999999"},
	} {
		if err := w.Set(tc.name, tc.value); err == nil {
			t.Errorf("Set(%s, %s) should fail", tc.name, tc.value)
		}
	}

	if len(WeightNames()) != 7 {
		t.Errorf("WeightNames() = %v", WeightNames())
	}

	d := DefaultWeights()
	if d.Fingerprint() != DefaultWeights().Fingerprint() {
		t.Error("fingerprint is not stable")
	}
	if d.Fingerprint() == w.Fingerprint() {
		t.Error("different weights share a fingerprint")
	}

	d.Randomize = -5
	if err := d.Validate(); err == nil {
		t.Error("negative randomize should not validate")
	}
}
