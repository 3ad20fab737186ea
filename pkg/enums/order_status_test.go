package enums

import "testing"

func TestParseOrderStatus(t *testing.T) {
	for _, value := range []string{"pending", "preparing", "out_for_delivery", "delivered", "cancelled"} {
		status, err := ParseOrderStatus(value)
		if err != nil {
			t.Fatalf("parse %q: %v", value, err)
		}
		if !status.IsValid() {
			t.Fatalf("%q should be valid", value)
		}
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatalf("unknown status should fail to parse")
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if !OrderStatusDelivered.IsTerminal() || !OrderStatusCancelled.IsTerminal() {
		t.Fatalf("delivered and cancelled are terminal")
	}
	if OrderStatusPending.IsTerminal() || OrderStatusPreparing.IsTerminal() || OrderStatusOutForDelivery.IsTerminal() {
		t.Fatalf("in-flight statuses are not terminal")
	}
}

func TestParseDiscountType(t *testing.T) {
	if _, err := ParseDiscountType("percentage"); err != nil {
		t.Fatalf("percentage should parse: %v", err)
	}
	if _, err := ParseDiscountType("fixed_amount"); err != nil {
		t.Fatalf("fixed_amount should parse: %v", err)
	}
	if _, err := ParseDiscountType("bogo"); err == nil {
		t.Fatalf("unknown discount type should fail")
	}
}
