package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"tripnest_backend/pkg/apperror"
)

// Action is a verb of the service gateway envelope.
type Action string

const (
	ActionCreate Action = "create"
	ActionList   Action = "list"
	ActionGetOne Action = "get_one"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// GatewayRequest is the envelope posted to the service gateway for every call.
type GatewayRequest struct {
	Action  Action          `json:"action"`
	ID      string          `json:"id,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Filters Filters         `json:"filters,omitempty"`
}

// GatewayResponse carries either the result payload or an error message.
type GatewayResponse struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

// RemoteStore proxies the CRUD verbs of one collection to the service gateway at
// <baseURL>/<collection>.
type RemoteStore[T any] struct {
	baseURL    string
	apiKey     string
	collection Collection
	timeout    time.Duration
}

func NewRemoteStore[T any](baseURL, apiKey string, collection Collection, timeout time.Duration) *RemoteStore[T] {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteStore[T]{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		collection: collection,
		timeout:    timeout,
	}
}

func (s *RemoteStore[T]) List(ctx context.Context, filters Filters) ([]T, error) {
	_, clean := SchemaOf(s.collection).cleanFilters(filters)
	records := []T{}
	if err := s.call(ctx, GatewayRequest{Action: ActionList, Filters: clean}, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *RemoteStore[T]) GetOne(ctx context.Context, id string) (*T, error) {
	var record T
	if err := s.call(ctx, GatewayRequest{Action: ActionGetOne, ID: id}, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *RemoteStore[T]) Create(ctx context.Context, record *T) error {
	data, err := json.Marshal(record)
	if err != nil {
		return apperror.Wrap(apperror.CodeValidation, "encode record", err)
	}
	return s.call(ctx, GatewayRequest{Action: ActionCreate, Data: data}, record)
}

func (s *RemoteStore[T]) Update(ctx context.Context, id string, patch map[string]interface{}) (*T, error) {
	_, clean := SchemaOf(s.collection).cleanPatch(patch)
	data, err := json.Marshal(clean)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeValidation, "encode patch", err)
	}
	var record T
	if err := s.call(ctx, GatewayRequest{Action: ActionUpdate, ID: id, Data: data}, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *RemoteStore[T]) Delete(ctx context.Context, id string) error {
	return s.call(ctx, GatewayRequest{Action: ActionDelete, ID: id}, nil)
}

func (s *RemoteStore[T]) call(ctx context.Context, req GatewayRequest, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return apperror.Network(fmt.Sprintf("%s %s cancelled", req.Action, s.collection), err)
	}

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	agent := fiber.Post(s.baseURL + "/" + string(s.collection))
	agent.JSON(req)
	agent.Timeout(timeout)
	if s.apiKey != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+s.apiKey)
	}
	if err := agent.Parse(); err != nil {
		return apperror.Network("invalid gateway url", err)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return apperror.Network(fmt.Sprintf("%s %s: gateway unreachable", req.Action, s.collection), errs[0])
	}

	var resp GatewayResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &resp); err != nil {
			return apperror.Network(fmt.Sprintf("%s %s: malformed gateway response", req.Action, s.collection), err)
		}
	}

	if code < 200 || code >= 300 {
		msg := resp.Error
		if msg == "" {
			msg = fmt.Sprintf("%s %s: gateway returned %d", req.Action, s.collection, code)
		}
		return apperror.FromHTTPStatus(code, msg)
	}

	if out == nil || len(resp.Data) == 0 || string(resp.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return apperror.Network(fmt.Sprintf("%s %s: malformed gateway payload", req.Action, s.collection), err)
	}
	return nil
}
