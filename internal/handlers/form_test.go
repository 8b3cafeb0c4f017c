package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestParseBodyURLEncoded(t *testing.T) {
	body := strings.NewReader("title=Hello&status=draft")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	form, err := parseBody(req)
	if err != nil {
		t.Fatalf("parseBody: %v", err)
	}
	if form.Get("title") != "Hello" {
		t.Errorf("title: got %q", form.Get("title"))
	}
	if form.Get("status") != "draft" {
		t.Errorf("status: got %q", form.Get("status"))
	}
}

func TestParseBodyMultipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("title", "Hello")
	mw.WriteField("excerpt", "")
	fw, _ := mw.CreateFormFile("featuredImage", "photo.jpg")
	fw.Write([]byte("fake image bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	form, err := parseBody(req)
	if err != nil {
		t.Fatalf("parseBody: %v", err)
	}
	if form.Get("title") != "Hello" {
		t.Errorf("title: got %q", form.Get("title"))
	}
	// Presence of an empty field must be observable.
	if !form.Has("excerpt") {
		t.Error("expected excerpt to be present")
	}
	if form.Has("missing") {
		t.Error("missing field reported as present")
	}

	file, header, err := formFile(req, "featuredImage")
	if err != nil {
		t.Fatalf("formFile: %v", err)
	}
	if file == nil {
		t.Fatal("expected a file")
	}
	defer file.Close()
	if header.Filename != "photo.jpg" {
		t.Errorf("filename: got %q", header.Filename)
	}
}

func TestFormFileAbsent(t *testing.T) {
	// Urlencoded request: no multipart reader at all.
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("title=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if _, err := parseBody(req); err != nil {
		t.Fatalf("parseBody: %v", err)
	}

	file, header, err := formFile(req, "featuredImage")
	if err != nil {
		t.Fatalf("formFile: %v", err)
	}
	if file != nil || header != nil {
		t.Error("expected nils for non-multipart request")
	}

	// Multipart request without the file field.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("title", "x")
	mw.Close()
	req = httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	file, header, err = formFile(req, "featuredImage")
	if err != nil {
		t.Fatalf("formFile: %v", err)
	}
	if file != nil || header != nil {
		t.Error("expected nils when the field is missing")
	}
}

func TestFormBool(t *testing.T) {
	trues := []string{"1", "true"}
	falses := []string{"", "0", "false", "TRUE", "yes", "on"}

	for _, v := range trues {
		if !formBool(v) {
			t.Errorf("formBool(%q) = false, want true", v)
		}
	}
	for _, v := range falses {
		if formBool(v) {
			t.Errorf("formBool(%q) = true, want false", v)
		}
	}
}

func TestFormInt(t *testing.T) {
	n, err := formInt("3")
	if err != nil || n == nil || *n != 3 {
		t.Errorf("formInt(\"3\") = %v, %v", n, err)
	}

	n, err = formInt("")
	if err != nil || n != nil {
		t.Errorf("formInt(\"\") = %v, %v; want nil, nil", n, err)
	}

	if _, err := formInt("abc"); err == nil {
		t.Error("formInt(\"abc\"): expected error")
	}
}

func TestFormUUID(t *testing.T) {
	id := uuid.New()
	if got := formUUID(id.String()); got == nil || *got != id {
		t.Errorf("formUUID(valid) = %v", got)
	}
	if got := formUUID(""); got != nil {
		t.Errorf("formUUID(\"\") = %v, want nil", got)
	}
	if got := formUUID("not-a-uuid"); got != nil {
		t.Errorf("formUUID(garbage) = %v, want nil", got)
	}
}
