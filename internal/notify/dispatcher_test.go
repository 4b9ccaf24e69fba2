package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	name   string
	events []string
	calls  []Payload
	err    error
	panics bool
}

func (l *recordingListener) Name() string { return l.name }

func (l *recordingListener) Handle(event string, payload Payload) error {
	l.events = append(l.events, event)
	l.calls = append(l.calls, payload)
	if l.panics {
		panic("listener exploded")
	}
	return l.err
}

func TestNotify_OrderAndExactlyOnce(t *testing.T) {
	d := NewDispatcher()
	a := &recordingListener{name: "a"}
	b := &recordingListener{name: "b"}
	d.Subscribe(a)
	d.Subscribe(b)

	payload := Payload{"order_id": int64(1)}
	d.Notify("x", payload)

	require.Equal(t, []string{"x"}, a.events)
	require.Equal(t, []string{"x"}, b.events)
	assert.Equal(t, payload, a.calls[0])
	assert.Equal(t, payload, b.calls[0])
}

func TestNotify_FailingListenerDoesNotBlockOthers(t *testing.T) {
	d := NewDispatcher()
	a := &recordingListener{name: "a", err: errors.New("smtp down")}
	b := &recordingListener{name: "b"}
	d.Subscribe(a)
	d.Subscribe(b)

	d.Notify("x", nil)

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1, "listener after a failing one must still run")
}

func TestNotify_PanickingListenerDoesNotBlockOthers(t *testing.T) {
	d := NewDispatcher()
	a := &recordingListener{name: "a", panics: true}
	b := &recordingListener{name: "b"}
	d.Subscribe(a)
	d.Subscribe(b)

	require.NotPanics(t, func() { d.Notify("x", nil) })
	assert.Len(t, b.events, 1)
}

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	a := &recordingListener{name: "a"}
	b := &recordingListener{name: "b"}
	d.Subscribe(a)
	d.Subscribe(b)
	require.Equal(t, 2, d.Len())

	d.Unsubscribe(a)
	require.Equal(t, 1, d.Len())
	d.Notify("x", nil)
	assert.Empty(t, a.events)
	assert.Len(t, b.events, 1)

	// 未注册的监听器退订是 no-op
	d.Unsubscribe(&recordingListener{name: "ghost"})
	assert.Equal(t, 1, d.Len())
}

func TestIndependentInstances(t *testing.T) {
	d1 := NewDispatcher()
	d2 := NewDispatcher()
	a := &recordingListener{name: "a"}
	d1.Subscribe(a)

	d2.Notify("x", nil)
	assert.Empty(t, a.events, "instances must not share listeners")

	assert.Same(t, Default(), Default())
}
