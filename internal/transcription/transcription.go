// Package transcription talks to the external speech-to-text collaborator.
// The engine only depends on the Transcriber interface; the HTTP client here
// is one implementation of it.
package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"voice-bench-go/internal/logger"
	"voice-bench-go/internal/types"
)

// Result is the collaborator contract: the full transcript plus timestamped
// segments covering it in chronological order.
type Result struct {
	Text     string                    `json:"text"`
	Segments []types.TranscriptSegment `json:"segments"`
}

type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (Result, error)
}

var httpClient = &http.Client{Timeout: 12 * time.Second}

type publishResponse struct {
	Code   int    `json:"Code"`
	Status string `json:"Status"`
	Data   struct {
		MediaId          string `json:"MediaId"`
		Status           string `json:"Status"`
		TranscriptionURL string `json:"TranscriptionURL"`
	} `json:"Data"`
	Reason string `json:"Reason,omitempty"`
}

type statusResponse struct {
	Code   int    `json:"Code"`
	Status string `json:"Status"`
	Data   struct {
		Status               string `json:"Status"`
		TranscriptionTextURL string `json:"TranscriptionTextURL"`
	} `json:"Data"`
	Reason string `json:"Reason,omitempty"`
}

// Client uploads local audio to the transcription service, polls until the
// job finishes, then downloads the transcript JSON.
type Client struct {
	host string
}

func NewClient(host string) (*Client, error) {
	if host == "" {
		return nil, fmt.Errorf("TRANSCRIBE_URL not set")
	}
	return &Client{host: strings.TrimRight(host, "/")}, nil
}

func (c *Client) Transcribe(ctx context.Context, audioPath string) (Result, error) {
	log := logger.New().WithField("module", "transcription")

	mediaID, existingURL, err := c.publish(ctx, audioPath)
	if err != nil {
		return Result{}, err
	}
	if existingURL != "" {
		return c.download(ctx, existingURL)
	}
	finalURL, err := c.poll(ctx, mediaID)
	if err != nil {
		return Result{}, err
	}
	log.WithField("final_url", finalURL).Debug("download final transcript")
	return c.download(ctx, finalURL)
}

func (c *Client) publish(ctx context.Context, audioPath string) (string, string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	fw, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", "", err
	}
	fd, err := os.Open(audioPath)
	if err != nil {
		return "", "", fmt.Errorf("open audio: %w", err)
	}
	defer fd.Close()
	if _, err = io.Copy(fw, fd); err != nil {
		return "", "", err
	}
	w.WriteField("withSegments", "true")
	_ = w.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/transcribe", &b)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var resp publishResponse
	if err := doJSON(req, &resp); err != nil {
		return "", "", err
	}
	if resp.Code != 200 {
		return "", "", fmt.Errorf("transcribe publish error: code=%d reason=%s", resp.Code, resp.Reason)
	}
	if resp.Data.TranscriptionURL != "" && strings.EqualFold(resp.Data.Status, "success") {
		return "", resp.Data.TranscriptionURL, nil
	}
	return resp.Data.MediaId, "", nil
}

func (c *Client) poll(ctx context.Context, mediaID string) (string, error) {
	base := c.host + "/getstatus"
	for i := 0; i < 40; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(1500 * time.Millisecond):
		}
		u, _ := url.Parse(base)
		q := u.Query()
		q.Set("mediaId", mediaID)
		u.RawQuery = q.Encode()
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		var s statusResponse
		if err := doJSON(req, &s); err != nil {
			continue
		}
		switch s.Data.Status {
		case "Success":
			return s.Data.TranscriptionTextURL, nil
		case "Queued", "Processing":
			continue
		case "Failed":
			return "", fmt.Errorf("transcription failed: %s", s.Reason)
		}
	}
	return "", fmt.Errorf("transcription timeout")
}

func (c *Client) download(ctx context.Context, transcriptURL string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, transcriptURL, nil)
	if err != nil {
		return Result{}, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("download failed: %s", string(body))
	}
	var out Result
	if err := json.Unmarshal(body, &out); err != nil {
		return Result{}, fmt.Errorf("transcript decode: %w", err)
	}
	return out, nil
}

func doJSON(req *http.Request, target interface{}) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 12 * time.Second
	var lastErr error
	op := func() error {
		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %s", string(body))
			return lastErr
		}
		if len(body) == 0 {
			lastErr = fmt.Errorf("empty body")
			return lastErr
		}
		if err := json.Unmarshal(body, target); err != nil {
			lastErr = fmt.Errorf("json decode error: %v body=%s", err, string(body))
			return lastErr
		}
		return nil
	}
	if err := backoff.Retry(op, bo); err != nil {
		return lastErr
	}
	return nil
}
