// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package validation

// Password bounds. bcrypt ignores input past 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// Recommendation count bounds for the JSON API.
const (
	MinK = 1
	MaxK = 50
)

// LoginForm is the body of POST /.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email,max=254"`
	Password string `form:"password" validate:"required,max=72"`
}

// SignupForm is the body of POST /signup. Only new passwords are held to the
// minimum length so accounts created before the rule can still log in.
type SignupForm struct {
	Email    string `form:"email" validate:"required,email,max=254"`
	Password string `form:"password" validate:"required,min=8,max=72"`
}

// RecommendationQuery is the query string of GET /api/v1/recommendations.
type RecommendationQuery struct {
	Title string `json:"title" validate:"required,notblank,max=500"`
	K     int    `json:"k" validate:"min=1,max=50"`
}

// HomeForm is the body of POST /home.
type HomeForm struct {
	Movie string `form:"movie" validate:"required,notblank,max=500"`
}
