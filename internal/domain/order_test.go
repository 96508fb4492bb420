package domain

import "testing"

func strPtr(s string) *string { return &s }

func TestDeliveryDetailsValidate(t *testing.T) {
	tests := []struct {
		name    string
		details DeliveryDetails
		wantErr error
	}{
		{
			name:    "valid delivery",
			details: DeliveryDetails{Type: DeliveryTypeDelivery, HostelName: strPtr("Block A")},
			wantErr: nil,
		},
		{
			name:    "valid pickup",
			details: DeliveryDetails{Type: DeliveryTypePickup, PickupTime: strPtr("18:00")},
			wantErr: nil,
		},
		{
			name:    "missing type",
			details: DeliveryDetails{},
			wantErr: ErrInvalidDeliveryType,
		},
		{
			name:    "unknown type",
			details: DeliveryDetails{Type: "dine_in"},
			wantErr: ErrInvalidDeliveryType,
		},
		{
			name:    "delivery without hostel name",
			details: DeliveryDetails{Type: DeliveryTypeDelivery},
			wantErr: ErrHostelNameRequired,
		},
		{
			name:    "delivery with empty hostel name",
			details: DeliveryDetails{Type: DeliveryTypeDelivery, HostelName: strPtr("")},
			wantErr: ErrHostelNameRequired,
		},
		{
			name:    "pickup without pickup time",
			details: DeliveryDetails{Type: DeliveryTypePickup},
			wantErr: ErrPickupTimeRequired,
		},
		{
			name:    "pickup with empty pickup time",
			details: DeliveryDetails{Type: DeliveryTypePickup, PickupTime: strPtr("")},
			wantErr: ErrPickupTimeRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.details.Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeliveryDetailsNormalized(t *testing.T) {
	delivery := DeliveryDetails{
		Type:       DeliveryTypeDelivery,
		HostelName: strPtr("Block A"),
		PickupTime: strPtr("18:00"),
	}
	normalized := delivery.Normalized()
	if normalized.PickupTime != nil {
		t.Errorf("expected pickup time cleared for delivery, got %v", *normalized.PickupTime)
	}
	if normalized.HostelName == nil || *normalized.HostelName != "Block A" {
		t.Errorf("expected hostel name preserved for delivery")
	}

	pickup := DeliveryDetails{
		Type:       DeliveryTypePickup,
		HostelName: strPtr("Block A"),
		PickupTime: strPtr("18:00"),
	}
	normalized = pickup.Normalized()
	if normalized.HostelName != nil {
		t.Errorf("expected hostel name cleared for pickup, got %v", *normalized.HostelName)
	}
	if normalized.PickupTime == nil || *normalized.PickupTime != "18:00" {
		t.Errorf("expected pickup time preserved for pickup")
	}
}

func TestOrderStatusBuckets(t *testing.T) {
	known := []OrderStatus{
		StatusPlaced, StatusPreparing, StatusReady, StatusOutForDelivery,
		StatusDelivered, StatusCancelled,
	}

	// Every known status belongs to exactly one bucket.
	for _, status := range known {
		current := status.IsCurrent()
		completed := status.IsCompleted()
		if current == completed {
			t.Errorf("status %q: IsCurrent=%v IsCompleted=%v, want exactly one true", status, current, completed)
		}
	}

	unknown := OrderStatus("Refunded")
	if unknown.IsCurrent() || unknown.IsCompleted() {
		t.Errorf("unknown status %q must belong to neither bucket", unknown)
	}
}
