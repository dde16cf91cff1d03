package activity

import (
	"testing"

	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
	"github.com/stretchr/testify/assert"
)

func TestHub_PublishSubscribe(t *testing.T) {
	h := NewHub()
	var got []domainauth.ActivityKind
	unsub := h.Subscribe(func(k domainauth.ActivityKind) { got = append(got, k) })

	h.Publish(domainauth.ActivityClick)
	h.Publish(domainauth.ActivityScroll)
	assert.Equal(t, []domainauth.ActivityKind{domainauth.ActivityClick, domainauth.ActivityScroll}, got)
	assert.Equal(t, 1, h.Subscribers())

	unsub()
	unsub()
	h.Publish(domainauth.ActivityKeyPress)
	assert.Len(t, got, 2)
	assert.Equal(t, 0, h.Subscribers())
}

func TestHub_NilSubscriber(t *testing.T) {
	h := NewHub()
	unsub := h.Subscribe(nil)
	unsub()
	assert.Equal(t, 0, h.Subscribers())
}

func TestHub_SubscriberMayUnsubscribeDuringPublish(t *testing.T) {
	h := NewHub()
	calls := 0
	var unsub func()
	unsub = h.Subscribe(func(domainauth.ActivityKind) {
		calls++
		unsub()
	})

	h.Publish(domainauth.ActivityClick)
	h.Publish(domainauth.ActivityClick)
	assert.Equal(t, 1, calls)
}
