package authsession_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/exyconn/authkit/pkg/authsession"
)

func TestExtractTokenFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		rawURL      string
		wantToken   string
		wantCleaned string
	}{
		{
			name:        "token with other params",
			rawURL:      "https://app.example.com/dash?tab=1&auth_token=tok123",
			wantToken:   "tok123",
			wantCleaned: "https://app.example.com/dash?tab=1",
		},
		{
			name:        "token alone",
			rawURL:      "https://app.example.com/?auth_token=tok123",
			wantToken:   "tok123",
			wantCleaned: "https://app.example.com/",
		},
		{
			name:        "no token",
			rawURL:      "https://app.example.com/dash?tab=1",
			wantToken:   "",
			wantCleaned: "https://app.example.com/dash?tab=1",
		},
		{
			name:        "empty url",
			rawURL:      "",
			wantToken:   "",
			wantCleaned: "",
		},
		{
			name:        "unparseable url",
			rawURL:      "://broken",
			wantToken:   "",
			wantCleaned: "://broken",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			token, cleaned := authsession.ExtractTokenFromURL(tt.rawURL)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantCleaned, cleaned)
		})
	}
}
