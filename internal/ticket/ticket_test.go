// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ticket

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/logiassist-tui/internal/gateway"
	"github.com/jeranaias/logiassist-tui/internal/model"
)

func validEZOI() Request {
	return Request{
		UserName:   "Pat",
		Email:      "pat@example.com",
		Program:    model.ProgramEZOI,
		ItemType:   model.ItemTypeAsset,
		ItemNumber: "1234",
		ErrorTitle: "Scanner fails",
	}
}

// newBackend serves one fixed reply and records the decoded request.
func newBackend(t *testing.T, status int, body string, seen *map[string]any) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if seen != nil {
			_ = json.Unmarshal(b, seen)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	c, err := gateway.New(srv.URL)
	require.NoError(t, err)
	return c
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantMsg string
	}{
		{"valid ezoi", func(*Request) {}, ""},
		{"valid windchill", func(r *Request) {
			r.Program = model.ProgramWindchill
			r.ItemType = ""
			r.ItemNumber = "HW-1234-5678"
		}, ""},
		{"no name", func(r *Request) { r.UserName = "  " }, MissingContactMessage},
		{"no email", func(r *Request) { r.Email = "" }, MissingContactMessage},
		{"no program", func(r *Request) { r.Program = "" }, "Please choose a program (EZOI or Windchill)."},
		{"no item type", func(r *Request) { r.ItemType = "" }, "Please choose an EZOI item type (Asset or Inventory)."},
		{"short ezoi", func(r *Request) { r.ItemNumber = "123" }, "Please enter a valid EZOI #. (e.g., 1234)"},
		{"bad windchill", func(r *Request) {
			r.Program = model.ProgramWindchill
			r.ItemNumber = "HW-1234"
		}, "Please enter a valid Windchill #. (e.g., HW-0000-0000)"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := validEZOI()
			tc.mutate(&r)
			err := r.Validate()
			if tc.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantMsg, verr.Error())
		})
	}
}

func TestSubmitSuccess(t *testing.T) {
	var seen map[string]any
	c := newBackend(t, http.StatusOK, `{"status":"success","ticketId":"T-7"}`, &seen)

	got, err := Submit(context.Background(), c, validEZOI())
	require.NoError(t, err)

	assert.Equal(t, "T-7", got.ID)
	assert.Equal(t, model.ItemTypeAsset, got.ItemType)
	assert.Equal(t, "submitTicket", seen["action"])
	assert.Equal(t, "Asset", seen["itemType"])
	assert.Equal(t, "", seen["errorDescription"])
}

func TestSubmitWindchillOmitsItemType(t *testing.T) {
	var seen map[string]any
	c := newBackend(t, http.StatusOK, `{"status":"success","ticketId":12}`, &seen)

	r := validEZOI()
	r.Program = model.ProgramWindchill
	r.ItemNumber = "AL-0000-0001"

	got, err := Submit(context.Background(), c, r)
	require.NoError(t, err)
	assert.Equal(t, "12", got.ID)
	assert.Empty(t, got.ItemType)
	assert.NotContains(t, seen, "itemType")
}

func TestSubmitFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"status error", http.StatusOK, `{"status":"error","message":"quota exceeded"}`, "Failed to submit the ticket: quota exceeded"},
		{"no ticket id", http.StatusOK, `{"status":"success"}`, "Failed to submit the ticket: " + UnknownErrorMessage},
		{"no status", http.StatusOK, `{"ticketId":"1","message":"odd"}`, "Failed to submit the ticket: odd"},
		{"http failure", http.StatusInternalServerError, `{}`, "Failed to submit the ticket: Request failed: 500"},
		{"missing sheet", http.StatusOK,
			`{"status":"error","message":"TypeError: Cannot read properties of null (reading 'appendRow')"}`,
			MissingSheetMessage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newBackend(t, tc.status, tc.body, nil)

			got, err := Submit(context.Background(), c, validEZOI())
			assert.Nil(t, got)

			var serr *SubmitError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestSubmitValidationMakesNoCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c, err := gateway.New(srv.URL)
	require.NoError(t, err)

	r := validEZOI()
	r.Email = ""
	_, err = Submit(context.Background(), c, r)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, called)
}
