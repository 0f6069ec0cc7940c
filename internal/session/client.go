package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pharmasuccess/examportal/internal/dto"
)

// Client is the API-backed Submitter used by interactive sessions.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) SubmitTest(testID, attemptID uint, answers []dto.SubmittedAnswerDTO) error {
	payload := dto.SubmitTestDTO{AttemptID: attemptID, Answers: answers}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/v1/tests/%d/submit", c.baseURL, testID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var envelope dto.Response
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil && envelope.Message != "" {
			return fmt.Errorf("submission rejected: %s", envelope.Message)
		}
		return fmt.Errorf("submission rejected: status %d", resp.StatusCode)
	}
	return nil
}
