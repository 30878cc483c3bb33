package business

import "testing"

func TestStatusIsTerminal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		want   bool
	}{
		{StatusNew, false},
		{StatusMarketApproved, false},
		{StatusSalesApproved, false},
		{StatusMarketDeclined, true},
		{StatusWon, true},
		{StatusLost, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContactComplete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		contact *Contact
		want    bool
	}{
		{"nil", nil, false},
		{"empty", &Contact{}, false},
		{"name only", &Contact{Name: "Jane"}, false},
		{"phone only", &Contact{Phone: "555"}, false},
		{"complete", &Contact{Name: "Jane", Phone: "555"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.contact.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewAndClone(t *testing.T) {
	t.Parallel()

	b := New("123456789", "Acme")
	if b.Status != StatusNew {
		t.Fatalf("status = %q, want %q", b.Status, StatusNew)
	}
	if b.Version != 1 {
		t.Fatalf("version = %d, want 1", b.Version)
	}

	b.Contact = &Contact{Name: "Jane", Phone: "555"}
	cp := b.Clone()
	cp.Contact.Name = "John"
	if b.Contact.Name != "Jane" {
		t.Errorf("Clone shares contact with original")
	}
}
