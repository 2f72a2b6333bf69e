// Package models - Test máy trạng thái phiên checkout và bất biến payload theo trạng thái.
package models

import "testing"

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		current string
		next    string
		want    bool
	}{
		{StateIdle, StateValidating, true},
		{StateIdle, StateReviewing, false},
		{StateIdle, StateCommitting, false},
		{StateValidating, StateReviewing, true},
		{StateValidating, StateIdle, true},
		{StateValidating, StateCommitting, false},
		{StateReviewing, StateValidating, true},
		{StateReviewing, StateCommitting, true},
		{StateReviewing, StateIdle, true},
		{StateCommitting, StateReviewing, true},
		{StateCommitting, StateIdle, true},
		{StateCommitting, StateValidating, false},
		{"paused", StateValidating, false},
	}

	for _, tt := range tests {
		if got := CanTransitionTo(tt.current, tt.next); got != tt.want {
			t.Errorf("CanTransitionTo(%q, %q) = %v, muốn %v", tt.current, tt.next, got, tt.want)
		}
	}
}

func TestValidatePayload(t *testing.T) {
	result := &ReconciliationResult{}

	tests := []struct {
		name    string
		session CheckoutSession
		want    bool
	}{
		{"validating không có result", CheckoutSession{State: StateValidating}, true},
		{"validating mang result là sai", CheckoutSession{State: StateValidating, Result: result}, false},
		{"reviewing phải có result", CheckoutSession{State: StateReviewing, Result: result}, true},
		{"reviewing thiếu result là sai", CheckoutSession{State: StateReviewing}, false},
		{"committing phải có result", CheckoutSession{State: StateCommitting, Result: result}, true},
		{"committing thiếu result là sai", CheckoutSession{State: StateCommitting}, false},
		{"trạng thái lạ luôn sai", CheckoutSession{State: "paused"}, false},
	}

	for _, tt := range tests {
		if got := tt.session.ValidatePayload(); got != tt.want {
			t.Errorf("%s: ValidatePayload() = %v, muốn %v", tt.name, got, tt.want)
		}
	}
}

func TestLineByVariation(t *testing.T) {
	session := CheckoutSession{
		Lines: []SessionLine{
			{VariationID: "v1", Quantity: 2},
			{VariationID: "v2", Quantity: 3},
		},
	}

	line := session.LineByVariation("v2")
	if line == nil {
		t.Fatal("LineByVariation không tìm thấy dòng v2")
	}
	if line.Quantity != 3 {
		t.Errorf("LineByVariation trả dòng sai, quantity = %d, muốn 3", line.Quantity)
	}

	// Con trỏ trả về phải trỏ vào slice gốc để caller chỉnh được số lượng
	line.Quantity = 1
	if session.Lines[1].Quantity != 1 {
		t.Error("sửa qua con trỏ LineByVariation không phản ánh vào session.Lines")
	}

	if session.LineByVariation("v9") != nil {
		t.Error("LineByVariation phải trả nil cho biến thể không có trong payload")
	}
}
