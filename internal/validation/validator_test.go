// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return the same non-nil instance")
	}
}

func TestValidateStruct_Forms(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantTag   string
	}{
		{"valid login", &LoginForm{Email: "ada@example.com", Password: "x"}, "", ""},
		{"login missing email", &LoginForm{Password: "x"}, "email", "required"},
		{"login bad email", &LoginForm{Email: "not-an-email", Password: "x"}, "email", "email"},
		{"login missing password", &LoginForm{Email: "ada@example.com"}, "password", "required"},
		{"valid signup", &SignupForm{Email: "ada@example.com", Password: "longenough"}, "", ""},
		{"signup short password", &SignupForm{Email: "ada@example.com", Password: "short"}, "password", "min"},
		{"signup long password", &SignupForm{Email: "ada@example.com", Password: strings.Repeat("p", 73)}, "password", "max"},
		{"valid query", &RecommendationQuery{Title: "Avatar", K: 5}, "", ""},
		{"query blank title", &RecommendationQuery{Title: "   ", K: 5}, "title", "notblank"},
		{"query empty title", &RecommendationQuery{K: 5}, "title", "required"},
		{"query k zero", &RecommendationQuery{Title: "Avatar", K: 0}, "k", "min"},
		{"query k too large", &RecommendationQuery{Title: "Avatar", K: 51}, "k", "max"},
		{"valid home", &HomeForm{Movie: "Avatar"}, "", ""},
		{"home blank movie", &HomeForm{Movie: "\t"}, "movie", "notblank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), err)
			}
			if errs[0].Field != tt.wantField || errs[0].Tag != tt.wantTag {
				t.Errorf("got %s/%s, want %s/%s", errs[0].Field, errs[0].Tag, tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	tests := []struct {
		input interface{}
		want  string
	}{
		{&LoginForm{Password: "x"}, "email is required"},
		{&LoginForm{Email: "nope", Password: "x"}, "email must be a valid email address"},
		{&SignupForm{Email: "a@b.co", Password: "abc"}, "password must be at least 8 characters"},
		{&RecommendationQuery{Title: "x", K: 99}, "k must be at most 50"},
		{&RecommendationQuery{Title: " ", K: 1}, "title must not be blank"},
		{&RecommendationQuery{Title: "x", K: 0}, "k must be at least 1"},
		{&struct {
			Mode string `json:"mode" validate:"oneof=fast slow"`
		}{Mode: "medium"}, "mode failed oneof validation"},
	}
	for _, tt := range tests {
		err := ValidateStruct(tt.input)
		if err == nil {
			t.Fatalf("%+v: expected error", tt.input)
		}
		if err.Error() != tt.want {
			t.Errorf("message = %q, want %q", err.Error(), tt.want)
		}
	}
}

func TestToAPIError(t *testing.T) {
	single := ValidateStruct(&SignupForm{Email: "ada@example.com", Password: "secret"})
	apiErr := single.ToAPIError()
	if apiErr.Code != ErrCodeValidation {
		t.Errorf("Code = %q", apiErr.Code)
	}
	if _, ok := apiErr.Details["value"]; ok {
		t.Error("details must not echo the submitted value")
	}
	if apiErr.Details["field"] != "password" {
		t.Errorf("Details = %v", apiErr.Details)
	}

	multi := ValidateStruct(&SignupForm{}).ToAPIError()
	if !strings.Contains(multi.Message, "email: ") || !strings.Contains(multi.Message, "password: ") {
		t.Errorf("multi-field message = %q", multi.Message)
	}
	fields, ok := multi.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("Details[fields] = %v", multi.Details["fields"])
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty message = %q", empty.Message)
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	err := ValidateStruct("not a struct")
	if err == nil || err.Errors()[0].Field != "unknown" {
		t.Errorf("ValidateStruct(string) = %v", err)
	}
}
