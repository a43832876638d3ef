package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []string
	d.Subscribe(EventAffiliationAdded, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.Business)
		return errors.New("first failed")
	})
	d.Subscribe(EventAffiliationAdded, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.Business)
		return nil
	})
	d.Subscribe(EventAffiliationRemoved, func(context.Context, Event) error {
		t.Fatal("wrong type delivered")
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventAffiliationAdded, Actor{SubjectID: "u1"}, "2617", "BC0871227", nil))
	if err == nil || err.Error() != "first failed" {
		t.Fatalf("expected joined handler error, got %v", err)
	}
	if len(got) != 2 || got[1] != "second:BC0871227" {
		t.Fatalf("handlers = %v", got)
	}
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventAuthorizationsChanged, Actor{}, "1", "", AuthorizationsChangedPayload{Roles: []string{"staff"}})
	if e.ID == "" || e.Timestamp.IsZero() || e.Type != EventAuthorizationsChanged {
		t.Fatalf("unexpected event %+v", e)
	}
}
