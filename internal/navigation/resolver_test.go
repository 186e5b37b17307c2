package navigation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockFetcher implements Fetcher for testing
type mockFetcher struct {
	payload []byte
	err     error
	actions []ActionType
}

func (m *mockFetcher) Fetch(_ context.Context, action ActionType) ([]byte, error) {
	m.actions = append(m.actions, action)
	return m.payload, m.err
}

func newTestResolver(payload string) (*Resolver, *mockFetcher) {
	f := &mockFetcher{payload: []byte(payload)}
	return NewResolver(f, zap.NewNop()), f
}

func TestNormalize_TopLevelArray(t *testing.T) {
	items, err := Normalize([]byte(`[{"_id":"a","name":"Panjabi"},{"_id":"b","name":"Saree"}]`))

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Panjabi", items[0]["name"])
}

func TestNormalize_WrapperKeys(t *testing.T) {
	cases := map[string]string{
		"data":       `{"data":[{"_id":"a","name":"X"}]}`,
		"products":   `{"products":[{"_id":"a","name":"X"}]}`,
		"categories": `{"categories":[{"_id":"a","name":"X"}]}`,
		"brands":     `{"brands":[{"_id":"a","name":"X"}]}`,
		"shops":      `{"shops":[{"_id":"a","name":"X"}]}`,
		"result":     `{"result":[{"_id":"a","name":"X"}]}`,
	}
	for key, payload := range cases {
		items, err := Normalize([]byte(payload))
		require.NoError(t, err, "wrapper %q", key)
		assert.Len(t, items, 1, "wrapper %q", key)
	}
}

func TestNormalize_WrapperOrderPrefersData(t *testing.T) {
	payload := `{"result":[{"_id":"r"}],"data":[{"_id":"d"}]}`

	items, err := Normalize([]byte(payload))

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "d", items[0]["_id"])
}

func TestNormalize_SkipsNonListWrapper(t *testing.T) {
	// data holds an object, so the next recognized key wins
	payload := `{"data":{"total":3},"products":[{"_id":"p","name":"X"}]}`

	items, err := Normalize([]byte(payload))

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p", items[0]["_id"])
}

func TestNormalize_NoRecognizedKey(t *testing.T) {
	_, err := Normalize([]byte(`{"entries":[{"_id":"a"}]}`))

	assert.Error(t, err)
}

func TestTargets_DisplayNameFallback(t *testing.T) {
	r, _ := newTestResolver(`[
		{"_id":"1","name":"Plain Name"},
		{"_id":"2","productTitle":"Product Title"},
		{"_id":"3","title":"Bare Title"},
		{"_id":"4","storeName":"Store Name"},
		{"_id":"5","brandName":"Brand Name"},
		{"_id":"6"}
	]`)

	targets, err := r.Targets(context.Background(), ActionProduct, "")

	require.NoError(t, err)
	require.Len(t, targets, 5)
	assert.Equal(t, "Plain Name", targets[0].Name)
	assert.Equal(t, "Product Title", targets[1].Name)
	assert.Equal(t, "Bare Title", targets[2].Name)
	assert.Equal(t, "Store Name", targets[3].Name)
	assert.Equal(t, "Brand Name", targets[4].Name)
}

func TestTargets_NameFieldPrecedence(t *testing.T) {
	r, _ := newTestResolver(`[{"_id":"1","title":"From Title","name":"From Name"}]`)

	targets, err := r.Targets(context.Background(), ActionCategory, "")

	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "From Name", targets[0].Name)
}

func TestTargets_SubstringSearch(t *testing.T) {
	r, _ := newTestResolver(`[
		{"_id":"1","name":"Cotton Panjabi"},
		{"_id":"2","name":"Silk Saree"},
		{"_id":"3","name":"panjabi premium"}
	]`)

	targets, err := r.Targets(context.Background(), ActionProduct, "PANJ")

	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, "1", targets[0].ID)
	assert.Equal(t, "3", targets[1].ID)
}

func TestTargets_IDFallsBackToPlainID(t *testing.T) {
	r, _ := newTestResolver(`[{"id":"plain","name":"X"}]`)

	targets, err := r.Targets(context.Background(), ActionShop, "")

	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "plain", targets[0].ID)
}

func TestTargets_NoFetchForNonListActions(t *testing.T) {
	r, f := newTestResolver(`[]`)

	targets, err := r.Targets(context.Background(), ActionNone, "")
	require.NoError(t, err)
	assert.Nil(t, targets)

	targets, err = r.Targets(context.Background(), ActionExternalURL, "")
	require.NoError(t, err)
	assert.Nil(t, targets)

	assert.Empty(t, f.actions)
}

func TestTargets_FetchError(t *testing.T) {
	f := &mockFetcher{err: errors.New("upstream down")}
	r := NewResolver(f, zap.NewNop())

	_, err := r.Targets(context.Background(), ActionBrand, "")

	assert.Error(t, err)
}

func TestSetAction_ResetsValueOnChange(t *testing.T) {
	r, _ := newTestResolver(`[]`)

	require.NoError(t, r.SetAction(ActionProduct))
	r.Select("prod-1")

	action, value := r.Value()
	assert.Equal(t, ActionProduct, action)
	assert.Equal(t, "prod-1", value)

	// Re-setting the same action keeps the selection
	require.NoError(t, r.SetAction(ActionProduct))
	_, value = r.Value()
	assert.Equal(t, "prod-1", value)

	require.NoError(t, r.SetAction(ActionCategory))
	action, value = r.Value()
	assert.Equal(t, ActionCategory, action)
	assert.Empty(t, value)
}

func TestSetAction_RejectsUnknown(t *testing.T) {
	r, _ := newTestResolver(`[]`)

	assert.Error(t, r.SetAction(ActionType("Bogus")))
}

func TestSetExternalURL(t *testing.T) {
	r, _ := newTestResolver(`[]`)
	require.NoError(t, r.SetAction(ActionExternalURL))

	require.NoError(t, r.SetExternalURL("https://hatbazar.example/offers"))

	_, value := r.Value()
	assert.Equal(t, "https://hatbazar.example/offers", value)
}

func TestSetExternalURL_Rejected(t *testing.T) {
	r, _ := newTestResolver(`[]`)
	require.NoError(t, r.SetAction(ActionExternalURL))

	for _, raw := range []string{"", "ftp://x.example", "https://", "not a url", "javascript:alert(1)"} {
		assert.Error(t, r.SetExternalURL(raw), "url %q", raw)
	}
}

func TestSetExternalURL_RequiresExternalAction(t *testing.T) {
	r, _ := newTestResolver(`[]`)
	require.NoError(t, r.SetAction(ActionProduct))

	assert.Error(t, r.SetExternalURL("https://hatbazar.example"))
}
