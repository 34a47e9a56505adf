// Package models defines the core data structures for users,
// organizations and user secrets.
package models

import "time"

// User represents an application user.
type User struct {
	// ID is the unique identifier for the user.
	ID string
	// Login is the login name chosen by the user.
	Login string
	// OrgID is the identifier of the user's personal organization.
	OrgID string
}

// Actor identifies the authenticated caller of a service operation.
// Every store query is scoped by both fields.
type Actor struct {
	// UserID is the identifier of the authenticated user.
	UserID string
	// OrgID is the identifier of the organization the user acts within.
	OrgID string
}

// StatusSuccess is the status value returned by every successful operation.
const StatusSuccess = "SUCCESS"

// UserSecret is a single user-owned secret entry. Category-specific
// fields are pointers: nil means the field was never set for this record.
type UserSecret struct {
	// ID is the unique identifier for the secret, assigned at creation.
	ID string `json:"id"`
	// UserID is the identifier of the owning user, immutable.
	UserID string `json:"userId"`
	// OrgID is the identifier of the owning organization, immutable.
	OrgID string `json:"orgId"`
	// SecretType is the category of the secret ("webLogin", "creditCard", "secureNote").
	SecretType string `json:"secretType"`
	// SecretName is the display name, stored word-capitalized.
	SecretName string `json:"secretName"`

	// Web login fields.
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`

	// Credit card fields.
	CardholderName     *string `json:"cardholderName,omitempty"`
	CardNumber         *string `json:"cardNumber,omitempty"`
	CardExpirationDate *string `json:"cardExpirationDate,omitempty"`
	CardSecurityCode   *string `json:"cardSecurityCode,omitempty"`

	// Secure note fields. Title is derived from SecretName for notes.
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`

	// AdditionalNotes applies to every category.
	AdditionalNotes *string `json:"additionalNotes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SecretType is the closed classification of a user secret. Unrecognized
// strings parse to TypeAny so a typo can never select a concrete category.
type SecretType string

const (
	// TypeWebLogin represents a website login (username and password).
	TypeWebLogin SecretType = "webLogin"
	// TypeCreditCard represents payment card details.
	TypeCreditCard SecretType = "creditCard"
	// TypeSecureNote represents a titled free-form note.
	TypeSecureNote SecretType = "secureNote"
	// TypeAny is the catch-all for unrecognized category strings.
	TypeAny SecretType = "any"
)

// ParseSecretType maps a raw category string to its SecretType variant,
// falling back to TypeAny for anything unrecognized.
func ParseSecretType(s string) SecretType {
	switch SecretType(s) {
	case TypeWebLogin, TypeCreditCard, TypeSecureNote:
		return SecretType(s)
	default:
		return TypeAny
	}
}

// Label returns the human-readable name of the category.
func (t SecretType) Label() string {
	switch t {
	case TypeWebLogin:
		return "Web Login"
	case TypeCreditCard:
		return "Credit Card"
	case TypeSecureNote:
		return "Secure Note"
	default:
		return "Any"
	}
}

// FieldSpec describes one optional field of a secret category:
// its JSON key, display label and whether its value is masked by default.
type FieldSpec struct {
	Key       string
	Label     string
	Sensitive bool
}

// VisibleFields returns the ordered list of optional fields that are
// meaningful for the given category. Fields outside this list must never
// be rendered or compared for a record of that category, even if they
// hold stale data. AdditionalNotes is applicable to every category.
func VisibleFields(t SecretType) []FieldSpec {
	var fields []FieldSpec
	switch t {
	case TypeWebLogin:
		fields = []FieldSpec{
			{Key: "username", Label: "Username"},
			{Key: "password", Label: "Password", Sensitive: true},
		}
	case TypeCreditCard:
		fields = []FieldSpec{
			{Key: "cardholderName", Label: "Cardholder Name"},
			{Key: "cardNumber", Label: "Card Number", Sensitive: true},
			{Key: "cardExpirationDate", Label: "Expiration Date"},
			{Key: "cardSecurityCode", Label: "Security Code", Sensitive: true},
		}
	case TypeSecureNote:
		fields = []FieldSpec{
			{Key: "title", Label: "Title"},
			{Key: "content", Label: "Content"},
		}
	}
	return append(fields, FieldSpec{Key: "additionalNotes", Label: "Additional Notes"})
}

// FieldValue returns the value of the optional field with the given JSON
// key, or nil when the field is absent. Keys outside the optional set
// return nil.
func (s *UserSecret) FieldValue(key string) *string {
	switch key {
	case "username":
		return s.Username
	case "password":
		return s.Password
	case "cardholderName":
		return s.CardholderName
	case "cardNumber":
		return s.CardNumber
	case "cardExpirationDate":
		return s.CardExpirationDate
	case "cardSecurityCode":
		return s.CardSecurityCode
	case "title":
		return s.Title
	case "content":
		return s.Content
	case "additionalNotes":
		return s.AdditionalNotes
	default:
		return nil
	}
}

// UserSecretUpdate carries the mutable fields of an update request.
// A nil pointer means "leave unchanged".
type UserSecretUpdate struct {
	SecretName         *string `json:"secretName,omitempty"`
	Username           *string `json:"username,omitempty"`
	Password           *string `json:"password,omitempty"`
	CardholderName     *string `json:"cardholderName,omitempty"`
	CardNumber         *string `json:"cardNumber,omitempty"`
	CardExpirationDate *string `json:"cardExpirationDate,omitempty"`
	CardSecurityCode   *string `json:"cardSecurityCode,omitempty"`
	Title              *string `json:"title,omitempty"`
	Content            *string `json:"content,omitempty"`
	AdditionalNotes    *string `json:"additionalNotes,omitempty"`
}

// SetField assigns the optional field with the given JSON key. Keys
// outside the optional set are ignored.
func (u *UserSecretUpdate) SetField(key string, value *string) {
	switch key {
	case "username":
		u.Username = value
	case "password":
		u.Password = value
	case "cardholderName":
		u.CardholderName = value
	case "cardNumber":
		u.CardNumber = value
	case "cardExpirationDate":
		u.CardExpirationDate = value
	case "cardSecurityCode":
		u.CardSecurityCode = value
	case "title":
		u.Title = value
	case "content":
		u.Content = value
	case "additionalNotes":
		u.AdditionalNotes = value
	}
}
