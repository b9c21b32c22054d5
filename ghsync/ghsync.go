// Package ghsync fetches the run history snapshot uploaded as a GitHub
// Actions artifact and returns it for a full replace of the local store.
// Replace means replace: local runs recorded since the CI upload are
// discarded on sync, by policy.
package ghsync

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/smokerun/smokerun/model"
)

// ArtifactName is the exact artifact name uploaded by the CI workflow.
const ArtifactName = "test-history"

// historyMember is the file looked for inside the artifact archive.
const historyMember = "test_history.json"

const (
	defaultBaseURL  = "https://api.github.com"
	listTimeout     = 20 * time.Second
	downloadTimeout = 60 * time.Second
)

// ErrorKind distinguishes the step of the sync protocol that failed.
type ErrorKind string

const (
	ErrMissingConfig  ErrorKind = "missing_config"
	ErrListFailed     ErrorKind = "list_failed"
	ErrNotFound       ErrorKind = "not_found"
	ErrDownloadFailed ErrorKind = "download_failed"
	ErrMemberNotFound ErrorKind = "member_not_found"
	ErrParseFailed    ErrorKind = "parse_failed"
	ErrSchemaMismatch ErrorKind = "schema_mismatch"
)

// SyncError is a short, human-readable diagnostic for one failed protocol
// step. It never carries a stack trace; the operator needs the cause, not
// the call path.
type SyncError struct {
	Kind   ErrorKind
	Detail string
}

func (e *SyncError) Error() string {
	return e.Detail
}

func syncErrorf(kind ErrorKind, format string, args ...any) *SyncError {
	return &SyncError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Client talks to the GitHub Actions artifacts API for one repository.
type Client struct {
	logger  zerolog.Logger
	baseURL string
	owner   string
	repo    string
	token   string
	http    *http.Client
}

// NewClient builds a sync client. Owner, repo, and token are validated at
// fetch time so a partially configured client can still be constructed.
func NewClient(logger zerolog.Logger, owner, repo, token string) *Client {
	return &Client{
		logger:  logger,
		baseURL: defaultBaseURL,
		owner:   owner,
		repo:    repo,
		token:   token,
		http:    &http.Client{},
	}
}

type artifact struct {
	Name               string `json:"name"`
	Expired            bool   `json:"expired"`
	UpdatedAt          string `json:"updated_at"`
	ArchiveDownloadURL string `json:"archive_download_url"`
}

type artifactList struct {
	Artifacts []artifact `json:"artifacts"`
}

// FetchLatestHistory walks the sync protocol: list artifacts, keep
// non-expired ones named "test-history", pick the greatest updated_at,
// download the zip, extract the history member, and parse it as a run
// record list. Every step fails with a distinct SyncError.
func (c *Client) FetchLatestHistory(ctx context.Context) ([]model.RunRecord, error) {
	if c.owner == "" || c.repo == "" || c.token == "" {
		return nil, syncErrorf(ErrMissingConfig,
			"GITHUB_OWNER / GITHUB_REPO / GITHUB_TOKEN must be configured")
	}

	latest, err := c.findLatestArtifact(ctx)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("artifact", latest.Name).
		Str("updated_at", latest.UpdatedAt).
		Msg("Selected artifact")

	archive, err := c.download(ctx, latest.ArchiveDownloadURL)
	if err != nil {
		return nil, err
	}

	raw, err := extractHistoryMember(archive)
	if err != nil {
		return nil, err
	}

	return parseHistory(raw)
}

func (c *Client) findLatestArtifact(ctx context.Context) (artifact, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/actions/artifacts?per_page=50", c.baseURL, c.owner, c.repo)

	status, body, err := c.get(ctx, url, listTimeout)
	if err != nil {
		return artifact{}, syncErrorf(ErrListFailed, "failed to list artifacts: %v", err)
	}
	if status != http.StatusOK {
		return artifact{}, syncErrorf(ErrListFailed,
			"failed to list artifacts: %d %s", status, excerpt(body))
	}

	var list artifactList
	if err := json.Unmarshal(body, &list); err != nil {
		return artifact{}, syncErrorf(ErrListFailed, "failed to decode artifact list: %v", err)
	}

	var latest *artifact
	for i := range list.Artifacts {
		a := &list.Artifacts[i]
		if a.Name != ArtifactName || a.Expired {
			continue
		}
		// "latest" is defined purely by updated_at; first wins on ties
		if latest == nil || a.UpdatedAt > latest.UpdatedAt {
			latest = a
		}
	}
	if latest == nil {
		return artifact{}, syncErrorf(ErrNotFound,
			"no %s artifact found (has the CI workflow uploaded one?)", ArtifactName)
	}
	if latest.ArchiveDownloadURL == "" {
		return artifact{}, syncErrorf(ErrNotFound, "artifact has no archive_download_url")
	}
	return *latest, nil
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	status, body, err := c.get(ctx, url, downloadTimeout)
	if err != nil {
		return nil, syncErrorf(ErrDownloadFailed, "failed to download artifact: %v", err)
	}
	if status != http.StatusOK {
		return nil, syncErrorf(ErrDownloadFailed,
			"failed to download artifact: %d %s", status, excerpt(body))
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url string, timeout time.Duration) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

// extractHistoryMember locates the history file inside the artifact zip,
// preferring the exact paths the workflow uploads before falling back to a
// suffix scan.
func extractHistoryMember(archive []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, syncErrorf(ErrDownloadFailed, "artifact is not a valid zip archive: %v", err)
	}

	byName := make(map[string]*zip.File, len(zr.File))
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		byName[f.Name] = f
		names = append(names, f.Name)
	}

	var target *zip.File
	for _, cand := range []string{"history/" + historyMember, historyMember} {
		if f, ok := byName[cand]; ok {
			target = f
			break
		}
	}
	if target == nil {
		for _, f := range zr.File {
			if strings.HasSuffix(f.Name, historyMember) {
				target = f
				break
			}
		}
	}
	if target == nil {
		if len(names) > 20 {
			names = names[:20]
		}
		return nil, syncErrorf(ErrMemberNotFound,
			"%s not found in artifact zip, entries: %v", historyMember, names)
	}

	rc, err := target.Open()
	if err != nil {
		return nil, syncErrorf(ErrMemberNotFound, "failed to open %s: %v", target.Name, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, syncErrorf(ErrMemberNotFound, "failed to read %s: %v", target.Name, err)
	}
	return raw, nil
}

func parseHistory(raw []byte) ([]model.RunRecord, error) {
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, syncErrorf(ErrParseFailed, "failed to parse history JSON: %v", err)
	}
	if _, ok := probe.([]any); !ok {
		return nil, syncErrorf(ErrSchemaMismatch, "history JSON is not a list")
	}

	var records []model.RunRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, syncErrorf(ErrSchemaMismatch, "history JSON does not match the run record schema: %v", err)
	}
	return records, nil
}

func excerpt(body []byte) string {
	const max = 500
	if len(body) <= max {
		return string(body)
	}
	cut := max
	// Back off to a rune boundary so the diagnostic stays valid UTF-8
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut])
}
