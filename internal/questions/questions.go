// Package questions provides question banks for journey question steps.
package questions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/verte-zerg/parcours/internal/logger"
)

var (
	// ErrEmptyBank is returned when a source has no questions.
	ErrEmptyBank = errors.New("question bank is empty")
	// ErrUnexpectedStatus is returned for non-200 API responses.
	ErrUnexpectedStatus = errors.New("unexpected question api status")
)

// DefaultPrompt is used when a bank has nothing to offer.
const DefaultPrompt = "Qu'avez-vous retenu de cette étape ?"

// Source returns the questions for a mode label.
type Source interface {
	Questions(ctx context.Context, mode string) ([]string, error)
}

// BankFunc adapts a lookup function such as catalog.Bank.
type BankFunc func(mode string) []string

// Static serves the built-in bank partitioned by mode.
type Static struct {
	bank BankFunc
}

// NewStatic wraps a bank lookup.
func NewStatic(bank BankFunc) *Static {
	return &Static{bank: bank}
}

// Questions implements Source.
func (s *Static) Questions(_ context.Context, mode string) ([]string, error) {
	if s.bank == nil {
		return nil, ErrEmptyBank
	}
	qs := s.bank(mode)
	if len(qs) == 0 {
		return nil, ErrEmptyBank
	}
	return qs, nil
}

// Remote fetches questions from the parcours HTTP API.
type Remote struct {
	baseURL string
	client  *http.Client
}

// NewRemote returns a client for baseURL with the given request timeout.
func NewRemote(baseURL string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type questionsResponse struct {
	Questions []string `json:"questions"`
}

// Questions implements Source.
func (r *Remote) Questions(ctx context.Context, mode string) ([]string, error) {
	endpoint := r.baseURL + "/api/questions"
	if mode != "" {
		endpoint += "?mode=" + url.QueryEscape(mode)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	var payload questionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}
	if len(payload.Questions) == 0 {
		return nil, ErrEmptyBank
	}
	return payload.Questions, nil
}

// Fallback serves the primary source and substitutes the fallback bank on
// any failure. It never returns the primary error.
type Fallback struct {
	primary  Source
	fallback Source
	log      *logger.Logger
}

// WithFallback chains primary and fallback. primary may be nil.
func WithFallback(primary, fallback Source, log *logger.Logger) *Fallback {
	return &Fallback{primary: primary, fallback: fallback, log: log}
}

// Questions implements Source.
func (f *Fallback) Questions(ctx context.Context, mode string) ([]string, error) {
	if f.primary != nil {
		qs, err := f.primary.Questions(ctx, mode)
		if err == nil {
			return qs, nil
		}
		if f.log != nil {
			f.log.Warn("question api unavailable, using static bank", "mode", mode, "error", err)
		}
	}
	if f.fallback == nil {
		return nil, ErrEmptyBank
	}
	return f.fallback.Questions(ctx, mode)
}

// Pick returns the question for step index, rotating through bank.
func Pick(bank []string, index int) string {
	if len(bank) == 0 {
		return DefaultPrompt
	}
	if index < 0 {
		index = -index
	}
	return bank[index%len(bank)]
}
