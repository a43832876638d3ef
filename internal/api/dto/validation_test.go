package dto

import "testing"

func TestValidateAffiliationRequest(t *testing.T) {
	if details, err := Validate(CreateAffiliationRequest{BusinessIdentifier: "BC0871227"}); err != nil {
		t.Fatalf("expected valid, got %v %v", details, err)
	}
	details, err := Validate(CreateAffiliationRequest{BusinessIdentifier: "BC 08"})
	if err == nil {
		t.Fatal("expected alphanum failure")
	}
	if details["BusinessIdentifier"] != "alphanum" {
		t.Fatalf("details = %v", details)
	}
	details, _ = Validate(CreateAffiliationRequest{})
	if details["BusinessIdentifier"] != "required" {
		t.Fatalf("details = %v", details)
	}
}

func TestValidateRestorationRequest(t *testing.T) {
	if _, err := Validate(RestorationRequest{Type: "fullRestoration"}); err != nil {
		t.Fatalf("expected valid: %v", err)
	}
	details, err := Validate(RestorationRequest{Type: "dissolution"})
	if err == nil || details["Type"] != "oneof" {
		t.Fatalf("details = %v, err = %v", details, err)
	}
}
