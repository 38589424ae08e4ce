package remote

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/taskboard/taskboard/internal/model"
)

// ListResult is the outcome of a task list call. The server answers
// either with a paginated envelope or, on legacy deployments, with a
// bare JSON array. The two cases are distinct variants so callers
// handle them with an explicit type switch instead of probing fields.
type ListResult interface {
	listResult()
}

// Envelope is a paginated list response. Next and Previous are the
// server's cursor URLs; their presence (not page arithmetic) is the
// authoritative signal for whether more pages exist.
type Envelope struct {
	Count    int          `json:"count"`
	Next     *string      `json:"next"`
	Previous *string      `json:"previous"`
	Results  []model.Task `json:"results"`
}

func (*Envelope) listResult() {}

// BareList is an unpaginated list response.
type BareList []model.Task

func (BareList) listResult() {}

// decodeListResult parses a list response body into the matching
// ListResult variant, keyed off the top-level JSON token.
func decodeListResult(body []byte) (ListResult, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty list response")
	}

	switch trimmed[0] {
	case '[':
		var tasks []model.Task
		if err := json.Unmarshal(trimmed, &tasks); err != nil {
			return nil, fmt.Errorf("unmarshaling task list: %w", err)
		}
		return BareList(tasks), nil
	case '{':
		var env Envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("unmarshaling task envelope: %w", err)
		}
		return &env, nil
	default:
		return nil, fmt.Errorf(
			"unexpected list response starting with %q", trimmed[0],
		)
	}
}
