package githubapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFileContent_RoundTrip(t *testing.T) {
	// Multi-byte characters and embedded newlines must survive the base64
	// transport encoding.
	original := "héllo wörld ✓\nsecond line\n"
	encoded := base64.StdEncoding.EncodeToString([]byte(original))
	// The API wraps encoded content with newlines.
	wrapped := encoded[:8] + "\n" + encoded[8:] + "\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octo/repo1/contents/notes/readme.md", r.URL.Path)
		assert.Equal(t, "dev", r.URL.Query().Get("ref"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name":     "readme.md",
			"path":     "notes/readme.md",
			"sha":      "abc123",
			"type":     "file",
			"content":  wrapped,
			"encoding": "base64",
		})
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	fc, err := client.GetFileContent(context.Background(), "octo", "repo1", "notes/readme.md", "dev")
	require.NoError(t, err)
	assert.True(t, fc.Present)
	assert.Equal(t, original, fc.Text)
}

func TestGetFileContent_EmptyFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name":"empty.txt","type":"file","content":"","encoding":"base64"}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	fc, err := client.GetFileContent(context.Background(), "octo", "repo1", "empty.txt", "")
	require.NoError(t, err)
	assert.True(t, fc.Present, "an empty file has content, it is just zero bytes")
	assert.Empty(t, fc.Text)
}

func TestGetFileContent_AbsentContent(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "object without content field",
			body: `{"name":"big.bin","type":"file","sha":"abc","size":10485760}`,
		},
		{
			name: "directory listing array",
			body: `[{"name":"a.txt","type":"file"},{"name":"sub","type":"dir"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server, Options{Token: "t"})
			fc, err := client.GetFileContent(context.Background(), "octo", "repo1", "whatever", "")
			require.NoError(t, err, "content-absent responses must not fail")
			assert.False(t, fc.Present)
			assert.Empty(t, fc.Text)
		})
	}
}

func TestGetFileContent_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	_, err := client.GetFileContent(context.Background(), "octo", "repo1", "missing.txt", "")
	assert.True(t, IsNotFound(err))
}

func TestGetRepositoryContents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octo/repo1/contents/":
			_, _ = w.Write([]byte(`[{"name":"a.txt","path":"a.txt","type":"file","size":3},{"name":"docs","path":"docs","type":"dir"}]`))
		case "/repos/octo/repo1/contents/a.txt":
			_, _ = w.Write([]byte(`{"name":"a.txt","path":"a.txt","type":"file","size":3}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Not Found"}`))
		}
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	ctx := context.Background()

	entries, err := client.GetRepositoryContents(ctx, "octo", "repo1", "", "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "dir", entries[1].Type)

	// A file path yields a single-entry slice.
	entries, err = client.GetRepositoryContents(ctx, "octo", "repo1", "a.txt", "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.txt", entries[0].Name)
}

func TestCreateOrUpdateFile_CreatesNewFile(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/repos/octo/repo1/contents/a.txt", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"content":{"sha":"abc"},"commit":{"sha":"def"}}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "T", DefaultOwner: "octo"})
	result, err := client.CreateOrUpdateFile(context.Background(), FileWrite{
		Repo:    "repo1",
		Path:    "a.txt",
		Content: "hello",
		Message: "init",
	})
	require.NoError(t, err)

	assert.Equal(t, "aGVsbG8=", gotBody["content"], "content must be base64-encoded for transport")
	assert.Equal(t, "main", gotBody["branch"])
	assert.Equal(t, "init", gotBody["message"])
	_, hasSHA := gotBody["sha"]
	assert.False(t, hasSHA, "a create must not carry a sha field")

	assert.Equal(t, "abc", result.Content.SHA)
	assert.Equal(t, "def", result.Commit.SHA)
}

func TestCreateOrUpdateFile_UpdateCarriesSHA(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"content":{"sha":"new"},"commit":{"sha":"c2"}}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	_, err := client.CreateOrUpdateFile(context.Background(), FileWrite{
		Owner:   "octo",
		Repo:    "repo1",
		Path:    "a.txt",
		Content: "updated",
		Message: "update",
		Branch:  "dev",
		SHA:     "oldsha",
	})
	require.NoError(t, err)
	assert.Equal(t, "oldsha", gotBody["sha"])
	assert.Equal(t, "dev", gotBody["branch"])
}

// commitServer mocks the contents endpoint for the commit protocol: a GET
// reports the current file state, a PUT applies GitHub's SHA check.
type commitServer struct {
	currentSHA string // empty means the file does not exist
	lookupCode int    // non-zero forces the GET to fail with this status
	puts       int
}

func (s *commitServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if s.lookupCode != 0 {
				w.WriteHeader(s.lookupCode)
				_, _ = w.Write([]byte(`{"message": "upstream trouble"}`))
				return
			}
			if s.currentSHA == "" {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"message": "Not Found"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"name": "a.txt", "path": "a.txt", "type": "file", "sha": s.currentSHA,
			})
		case http.MethodPut:
			s.puts++
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			sha, _ := body["sha"].(string)
			if s.currentSHA != "" && sha != s.currentSHA {
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(`{"message": "a.txt does not match ` + s.currentSHA + `"}`))
				return
			}
			_, _ = w.Write([]byte(`{"content":{"sha":"newblob"},"commit":{"sha":"newcommit"}}`))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func TestCommitChanges_CreatesWhenAbsent(t *testing.T) {
	srv := &commitServer{}
	server := httptest.NewServer(srv.handler(t))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	result, err := client.CommitChanges(context.Background(), FileWrite{
		Owner: "octo", Repo: "repo1", Path: "a.txt",
		Content: "hello", Message: "init",
	})
	require.NoError(t, err, "a 404 on lookup is the expected create path, not an error")
	assert.Equal(t, "newcommit", result.Commit.SHA)
	assert.Equal(t, 1, srv.puts)
}

func TestCommitChanges_UpdatesWithCurrentSHA(t *testing.T) {
	srv := &commitServer{currentSHA: "S"}
	server := httptest.NewServer(srv.handler(t))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	result, err := client.CommitChanges(context.Background(), FileWrite{
		Owner: "octo", Repo: "repo1", Path: "a.txt",
		Content: "updated", Message: "update",
		SHA: "caller-supplied-and-ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "newcommit", result.Commit.SHA)
}

func TestCommitChanges_StaleSHAConflicts(t *testing.T) {
	// The file changes between the lookup and the write, as a concurrent
	// writer would cause. The conflict must surface, never be retried.
	srv := &commitServer{currentSHA: "S"}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			srv.handler(t)(w, r)
			srv.currentSHA = "S2"
			return
		}
		srv.handler(t)(w, r)
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	_, err := client.CommitChanges(context.Background(), FileWrite{
		Owner: "octo", Repo: "repo1", Path: "a.txt",
		Content: "updated", Message: "update",
	})
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Equal(t, 1, srv.puts, "the client must not retry a conflicted write")
}

func TestCommitChanges_LookupFailureAborts(t *testing.T) {
	// A non-404 lookup failure must not be treated as "file absent": writing
	// without a SHA could overwrite-as-new a file that does exist.
	srv := &commitServer{lookupCode: http.StatusInternalServerError}
	server := httptest.NewServer(srv.handler(t))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	_, err := client.CommitChanges(context.Background(), FileWrite{
		Owner: "octo", Repo: "repo1", Path: "a.txt",
		Content: "hello", Message: "init",
	})
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Equal(t, 0, srv.puts, "no write may be attempted when the lookup failed")
}

func TestCommitChanges_DefaultOwnerAndBranch(t *testing.T) {
	var gotPath, gotRef string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gotPath = r.URL.Path
			gotRef = r.URL.Query().Get("ref")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Not Found"}`))
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"content":{"sha":"a"},"commit":{"sha":"b"}}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t", DefaultOwner: "octo"})
	_, err := client.CommitChanges(context.Background(), FileWrite{
		Repo: "repo1", Path: "a.txt", Content: "x", Message: "m",
	})
	require.NoError(t, err)
	assert.Equal(t, "/repos/octo/repo1/contents/a.txt", gotPath)
	assert.Equal(t, "main", gotRef, "the lookup must read the target branch")
	assert.Equal(t, "main", gotBody["branch"])
}

func TestCommitChanges_CommitterIdentity(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Not Found"}`))
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"content":{"sha":"a"},"commit":{"sha":"b"}}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t", Username: "octo", Email: "octo@example.com"})
	_, err := client.CommitChanges(context.Background(), FileWrite{
		Owner: "octo", Repo: "repo1", Path: "a.txt", Content: "x", Message: "m",
	})
	require.NoError(t, err)

	committer, ok := gotBody["committer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "octo", committer["name"])
	assert.Equal(t, "octo@example.com", committer["email"])
}
