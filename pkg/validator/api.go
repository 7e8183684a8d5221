package validator

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// ValidatorAPI handles interactions with the validator listing API
type ValidatorAPI struct {
	url    string
	client *http.Client
}

// NewValidatorAPI creates a new ValidatorAPI instance. A zero timeout leaves
// requests bounded only by the caller's context.
func NewValidatorAPI(url string, timeout time.Duration) *ValidatorAPI {
	return &ValidatorAPI{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchValidators fetches every validator record from the API
func (a *ValidatorAPI) FetchValidators(ctx context.Context) ([]ValidatorRecord, error) {
	log.WithField("url", a.url).Debug("Fetching validators")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch validators")
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return nil, errors.Errorf("failed to fetch validators: %s - %s", resp.Status, string(body))
	}

	var records []ValidatorRecord

	if errD := json.NewDecoder(resp.Body).Decode(&records); errD != nil {
		return nil, errors.Wrap(errD, "failed to decode validators")
	}

	log.WithField("count", len(records)).Debug("Validators fetched")

	return records, nil
}
