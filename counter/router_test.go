package counter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observed struct {
	action string
	status Status
}

type recordObserver struct {
	sync.Mutex
	records []observed
}

func (p *recordObserver) ObserveRequest(action string, status Status, elapsed time.Duration) {
	p.Lock()
	defer p.Unlock()
	p.records = append(p.records, observed{action, status})
}

func TestRouterScenario(t *testing.T) {
	router := NewRouter(NewStore(), nil)

	cases := []struct {
		payload string
		reply   string
	}{
		{`{"action":"counter","counter_name":"test_counter"}`, `{"status":"ok","counter_name":"test_counter","count":1}`},
		{`{"action":"counter","counter_name":"test_counter"}`, `{"status":"ok","counter_name":"test_counter","count":2}`},
		{`{"action":"reset","counter_name":"test_counter"}`, `{"status":"ok","counter_name":"test_counter","count":0}`},
		{`{"action":"counter","counter_name":"test_counter"}`, `{"status":"ok","counter_name":"test_counter","count":1}`},
		{`{"action":"get","counter_name":"test_counter"}`, `{"status":"ok","counter_name":"test_counter","count":1}`},
		{`{"action":"delete","counter_name":"test_counter"}`, `{"status":"error","message":"Invalid action: delete"}`},
		{`{"action":"get","counter_name":"test_counter1"}`, `{"status":"error","counter_name":"test_counter1","message":"Counter does not exist"}`},
		{`{"action":"counter","counter_name":""}`, `{"status":"error","counter_name":"","message":"counter_name is required"}`},
		{`{"action":"reset","counter_name":"doesnt_exist"}`, `{"status":"error","counter_name":"doesnt_exist","message":"Counter does not exist"}`},
		{`not json`, `"Invalid JSON"`},
	}
	for _, cs := range cases {
		reply := router.HandlePayload([]byte(cs.payload))
		assert.Equal(t, cs.reply, string(reply), cs.payload)
	}
}

func TestRouterActionTrimmed(t *testing.T) {
	router := NewRouter(NewStore(), nil)
	resp := router.Handle(&Request{Action: "  counter\n", CounterName: "a"})
	assert.True(t, resp.OK())
	assert.EqualValues(t, 1, *resp.Count)

	resp = router.Handle(&Request{Action: "  nope ", CounterName: "a"})
	assert.False(t, resp.OK())
	assert.Nil(t, resp.CounterName)
	assert.Nil(t, resp.Count)
	assert.Equal(t, "Invalid action: nope", resp.Message)
}

func TestRouterMissingFields(t *testing.T) {
	router := NewRouter(NewStore(), nil)

	reply := router.HandlePayload([]byte(`{}`))
	assert.Equal(t, `{"status":"error","message":"Invalid action: "}`, string(reply))

	reply = router.HandlePayload([]byte(`{"action":"counter"}`))
	assert.Equal(t, `{"status":"error","counter_name":"","message":"counter_name is required"}`, string(reply))

	reply = router.HandlePayload([]byte(`{"action":"reset"}`))
	assert.Equal(t, `{"status":"error","counter_name":"","message":"Counter does not exist"}`, string(reply))
}

func TestRouterUnknownActionNeverHasName(t *testing.T) {
	router := NewRouter(NewStore(), nil)
	router.Store().Incr("a")
	for _, action := range []string{"", "Counter", "GET", "incr", "delete", "reset2"} {
		resp := router.Handle(&Request{Action: action, CounterName: "a"})
		assert.Equal(t, StatusError, resp.Status, action)
		assert.Nil(t, resp.CounterName, action)
		assert.Nil(t, resp.Count, action)
	}
	count, err := router.Store().Get("a")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestRouterObserver(t *testing.T) {
	observer := &recordObserver{}
	router := NewRouter(NewStore(), observer)
	router.HandlePayload([]byte(`{"action":"counter","counter_name":"a"}`))
	router.HandlePayload([]byte(`{"action":"get","counter_name":"b"}`))
	router.HandlePayload([]byte(`{"action":"x"}`))
	router.HandlePayload([]byte(`[1,2]`))

	assert.Equal(t, []observed{
		{"counter", StatusOK},
		{"get", StatusError},
		{"unknown", StatusError},
		{"invalid", StatusError},
	}, observer.records)
}

func TestRouterInvalidUTF8Name(t *testing.T) {
	router := NewRouter(NewStore(), nil)
	for _, name := range []string{"\xff", "\xfe"} {
		reply := router.HandlePayload([]byte(`{"action":"counter","counter_name":"` + name + `"}`))
		assert.Equal(t, `"Invalid JSON"`, string(reply))
	}
	assert.Equal(t, 0, router.Store().Len())
}
