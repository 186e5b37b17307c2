package navigation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// ActionType is the closed set of mobile-app navigation actions
type ActionType string

const (
	ActionNone        ActionType = "None"
	ActionProduct     ActionType = "Product"
	ActionCategory    ActionType = "Category"
	ActionBrand       ActionType = "Brand"
	ActionShop        ActionType = "Shop"
	ActionExternalURL ActionType = "ExternalUrl"
)

// IsValid checks if the action type is known
func (a ActionType) IsValid() bool {
	switch a {
	case ActionNone, ActionProduct, ActionCategory, ActionBrand, ActionShop, ActionExternalURL:
		return true
	default:
		return false
	}
}

// wrapperKeys are the named response envelopes tried in order after the
// top-level array. Compatibility shim: the collection endpoints do not agree
// on a response shape.
var wrapperKeys = []string{"data", "products", "categories", "brands", "shops", "result"}

// nameFields is the fixed fallback order for resolving an item's display name
var nameFields = []string{"name", "productTitle", "title", "storeName", "brandName"}

// Target is one selectable navigation destination
type Target struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Fetcher retrieves the raw candidate list for an action type
type Fetcher interface {
	Fetch(ctx context.Context, action ActionType) ([]byte, error)
}

// Resolver turns an action type into a searchable, uniform target list and
// tracks the currently selected navigation value.
type Resolver struct {
	fetcher Fetcher
	logger  *zap.Logger

	action ActionType
	value  string
}

// NewResolver creates a new navigation target resolver
func NewResolver(fetcher Fetcher, logger *zap.Logger) *Resolver {
	return &Resolver{
		fetcher: fetcher,
		logger:  logger,
		action:  ActionNone,
	}
}

// SetAction switches the action type and resets any previously selected value
func (r *Resolver) SetAction(action ActionType) error {
	if !action.IsValid() {
		return fmt.Errorf("unknown action type %q", action)
	}
	if action != r.action {
		r.value = ""
	}
	r.action = action
	return nil
}

// Select stores a target id as the navigation value
func (r *Resolver) Select(id string) {
	r.value = id
}

// SetExternalURL stores a freeform URL value; only for the ExternalUrl action
func (r *Resolver) SetExternalURL(raw string) error {
	if r.action != ActionExternalURL {
		return fmt.Errorf("external URL value requires the %s action", ActionExternalURL)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid external URL %q", raw)
	}
	r.value = raw
	return nil
}

// Value returns the currently selected navigation value
func (r *Resolver) Value() (ActionType, string) {
	return r.action, r.value
}

// Targets fetches, normalizes and filters the candidate list for an action.
// The query is a case-insensitive substring match over display names.
func (r *Resolver) Targets(ctx context.Context, action ActionType, query string) ([]Target, error) {
	if !action.IsValid() {
		return nil, fmt.Errorf("unknown action type %q", action)
	}
	if action == ActionNone || action == ActionExternalURL {
		return nil, nil
	}

	payload, err := r.fetcher.Fetch(ctx, action)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s targets: %w", action, err)
	}

	items, err := Normalize(payload)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))

	targets := make([]Target, 0, len(items))
	for _, item := range items {
		name := displayName(item)
		if name == "" {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(name), query) {
			continue
		}
		targets = append(targets, Target{ID: itemID(item), Name: name})
	}

	return targets, nil
}

// Normalize flattens the heterogeneous collection responses into a uniform
// item list: a top-level array is taken as-is, otherwise the named wrapper
// keys are tried in a fixed order.
func Normalize(payload []byte) ([]map[string]interface{}, error) {
	var asList []map[string]interface{}
	if err := json.Unmarshal(payload, &asList); err == nil {
		return asList, nil
	}

	var asObject map[string]json.RawMessage
	if err := json.Unmarshal(payload, &asObject); err != nil {
		return nil, fmt.Errorf("unrecognized response shape: %w", err)
	}

	for _, key := range wrapperKeys {
		raw, ok := asObject[key]
		if !ok {
			continue
		}
		var list []map[string]interface{}
		if err := json.Unmarshal(raw, &list); err == nil {
			return list, nil
		}
	}

	return nil, fmt.Errorf("no recognized list key in response")
}

// displayName resolves the first present name field, in fallback order
func displayName(item map[string]interface{}) string {
	for _, field := range nameFields {
		if v, ok := item[field].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func itemID(item map[string]interface{}) string {
	if v, ok := item["_id"].(string); ok && v != "" {
		return v
	}
	if v, ok := item["id"].(string); ok {
		return v
	}
	return ""
}
