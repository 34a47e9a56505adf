package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/akazakov/keepsafe/internal/models"
)

func TestForCreate_WebLogin(t *testing.T) {
	in := strings.NewReader("github login\nocto\nhunter2\n\n")
	var out bytes.Buffer

	payload := New(in, &out).ForCreate(models.TypeWebLogin)

	if payload.SecretType != "webLogin" {
		t.Errorf("secretType = %q; want webLogin", payload.SecretType)
	}
	if payload.SecretName != "github login" {
		t.Errorf("secretName = %q; want %q", payload.SecretName, "github login")
	}
	if payload.Username == nil || *payload.Username != "octo" {
		t.Errorf("username = %v; want octo", payload.Username)
	}
	if payload.Password == nil || *payload.Password != "hunter2" {
		t.Errorf("password = %v; want hunter2", payload.Password)
	}
	if payload.AdditionalNotes != nil {
		t.Errorf("empty notes answer should stay nil, got %q", *payload.AdditionalNotes)
	}
	if payload.CardNumber != nil {
		t.Error("card fields must not be collected for a web login")
	}
}

func TestForCreate_SecureNoteSkipsTitle(t *testing.T) {
	in := strings.NewReader("wifi code\nthe password is 1234\n\n")
	var out bytes.Buffer

	payload := New(in, &out).ForCreate(models.TypeSecureNote)

	if payload.Title != nil {
		t.Errorf("title must never be prompted for, got %q", *payload.Title)
	}
	if payload.Content == nil || *payload.Content != "the password is 1234" {
		t.Errorf("content = %v; want note body", payload.Content)
	}
	if strings.Contains(out.String(), "Title") {
		t.Errorf("title question printed:\n%s", out.String())
	}
}

func TestForUpdate_EmptyAnswersLeaveFieldsNil(t *testing.T) {
	// Name kept, username changed, password kept, notes kept.
	in := strings.NewReader("\nnew-octo\n\n\n")
	var out bytes.Buffer

	update := New(in, &out).ForUpdate(models.TypeWebLogin)

	if update.SecretName != nil {
		t.Errorf("secretName should stay nil, got %q", *update.SecretName)
	}
	if update.Username == nil || *update.Username != "new-octo" {
		t.Errorf("username = %v; want new-octo", update.Username)
	}
	if update.Password != nil || update.AdditionalNotes != nil {
		t.Errorf("empty answers should stay nil: %+v", update)
	}
	if !strings.Contains(out.String(), "Leave a field empty") {
		t.Errorf("hint line missing:\n%s", out.String())
	}
}

func TestForUpdate_TrimsWhitespace(t *testing.T) {
	in := strings.NewReader("  Bank Card  \n\n\n\n\n\n")
	var out bytes.Buffer

	update := New(in, &out).ForUpdate(models.TypeCreditCard)

	if update.SecretName == nil || *update.SecretName != "Bank Card" {
		t.Errorf("secretName = %v; want trimmed value", update.SecretName)
	}
}
