package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadTextbook(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/textbooks/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "chem101.pdf", header.Filename)

		json.NewEncoder(w).Encode(map[string]any{
			"textbook_id": "tb-7",
			"topics": []map[string]any{
				{"id": "t1", "name": "Stoichiometry", "weight": 1.0},
			},
		})
	})

	up, err := c.UploadTextbook(context.Background(), "/tmp/chem101.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "tb-7", up.TextbookID)
	require.Len(t, up.Topics, 1)
	assert.Equal(t, "Stoichiometry", up.Topics[0].Name)
}

// A caller-supplied deadline must win over the configured timeout. Uploads
// run with a wider budget than ordinary requests, so a slow server response
// within the caller's deadline still succeeds.
func TestUploadTextbookHonorsCallerDeadline(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(600 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]any{"textbook_id": "tb-slow"})
	})
	c.timeout = 200 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 800*time.Millisecond)
	defer cancel()

	up, err := c.UploadTextbook(ctx, "book.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "tb-slow", up.TextbookID)
}

func TestConfiguredTimeoutBoundsRequestsWithoutDeadline(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(600 * time.Millisecond)
	})
	c.timeout = 100 * time.Millisecond

	_, err := c.UploadTextbook(context.Background(), "book.pdf", strings.NewReader("%PDF-1.4"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
