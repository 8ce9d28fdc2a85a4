package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAccount_BeforeSave_ValidAccountType(t *testing.T) {
	tests := []struct {
		name        string
		accountType string
		wantErr     bool
	}{
		{name: "Admin account", accountType: AccountTypeAdmin, wantErr: false},
		{name: "User account", accountType: AccountTypeUser, wantErr: false},
		{name: "Invalid type", accountType: "Landlord", wantErr: true},
		{name: "Empty type", accountType: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := &Account{AccountType: tt.accountType, Address: "Dhaka", MobileNumber: "01712345678"}

			err := account.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAccount_BeforeSave_MobileNumberLength(t *testing.T) {
	account := &Account{AccountType: AccountTypeUser, MobileNumber: "0171234567890"}
	if err := account.BeforeSave(nil); err == nil {
		t.Error("BeforeSave() expected error for 13 character mobile number, got nil")
	}
}

func TestValidPrice(t *testing.T) {
	tests := []struct {
		name  string
		price string
		want  bool
	}{
		{name: "Zero", price: "0", want: true},
		{name: "Two decimals", price: "1250.50", want: true},
		{name: "Trailing zeros beyond scale", price: "10.500", want: true},
		{name: "Three decimals", price: "10.505", want: false},
		{name: "Negative", price: "-1", want: false},
		{name: "Largest allowed", price: "9999999999.99", want: true},
		{name: "Too many digits", price: "10000000000", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPrice(decimal.RequireFromString(tt.price)); got != tt.want {
				t.Errorf("ValidPrice(%s) = %v, want %v", tt.price, got, tt.want)
			}
		})
	}
}

func TestReview_BeforeSave_ValidRating(t *testing.T) {
	tests := []struct {
		name    string
		rating  int
		wantErr bool
	}{
		{name: "Minimum rating", rating: 1, wantErr: false},
		{name: "Maximum rating", rating: 5, wantErr: false},
		{name: "Zero rating", rating: 0, wantErr: true},
		{name: "Six stars", rating: 6, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review := &Review{Rating: tt.rating, Text: "Nice place"}

			err := review.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRentRequest_BeforeSave_ValidStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  RentRequestStatus
		wantErr bool
	}{
		{name: "Pending", status: RentRequestStatusPending, wantErr: false},
		{name: "Accepted", status: RentRequestStatusAccepted, wantErr: false},
		{name: "Rejected", status: RentRequestStatusRejected, wantErr: false},
		{name: "Lowercase", status: "pending", wantErr: true},
		{name: "Empty", status: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &RentRequest{AdvertisementID: 1, RequestedByID: 2, Status: tt.status}

			err := req.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAdvertisement_Listed(t *testing.T) {
	tests := []struct {
		name string
		ad   Advertisement
		want bool
	}{
		{name: "Unapproved", ad: Advertisement{}, want: false},
		{name: "Approved", ad: Advertisement{IsApproved: true}, want: true},
		{name: "Approved and rented", ad: Advertisement{IsApproved: true, IsRented: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ad.Listed(); got != tt.want {
				t.Errorf("Listed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAuthToken_Expired(t *testing.T) {
	now := time.Now()
	token := &AuthToken{ExpiresAt: now.Add(time.Hour)}

	if token.Expired(now) {
		t.Error("Expired() = true for future expiry")
	}
	if !token.Expired(now.Add(2 * time.Hour)) {
		t.Error("Expired() = false for past expiry")
	}
}

func TestTableNames(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{User{}.TableName(), "users"},
		{Account{}.TableName(), "accounts"},
		{AuthToken{}.TableName(), "auth_tokens"},
		{Category{}.TableName(), "categories"},
		{House{}.TableName(), "houses"},
		{Advertisement{}.TableName(), "advertisements"},
		{RentRequest{}.TableName(), "rent_requests"},
		{Review{}.TableName(), "reviews"},
		{Favorite{}.TableName(), "account_favourites"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("TableName() = %q, want %q", tt.got, tt.want)
		}
	}
}
