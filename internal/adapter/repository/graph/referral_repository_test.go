package graph

import (
	"context"
	"errors"
	"testing"
)

func TestReferralRepositoryListInvitees(t *testing.T) {
	client := NewMemoryClient()
	client.PushReadResult(Result{Records: []Record{
		{"inviteeId": "user-2"},
		{"inviteeId": "user-3"},
	}})

	repo := NewReferralRepository(client)

	edges, err := repo.ListInvitees(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(edges))
	}
	if edges[0].InviterID != "user-1" || edges[0].InviteeID != "user-2" {
		t.Fatalf("unexpected first edge: %+v", edges[0])
	}

	calls := client.ReadCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 read call, got %d", len(calls))
	}
	if calls[0].Params["inviterId"] != "user-1" {
		t.Fatalf("expected inviterId param, got %v", calls[0].Params)
	}
}

func TestReferralRepositoryEmptyResult(t *testing.T) {
	repo := NewReferralRepository(NewMemoryClient())

	edges, err := repo.ListInvitees(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(edges) != 0 {
		t.Fatalf("expected no edges, got %d", len(edges))
	}
}

func TestReferralRepositoryMalformedRecord(t *testing.T) {
	client := NewMemoryClient()
	client.PushReadResult(Result{Records: []Record{{"inviteeId": 42}}})

	repo := NewReferralRepository(client)

	if _, err := repo.ListInvitees(context.Background(), "user-1"); err == nil {
		t.Fatal("expected error for malformed record")
	}
}

func TestReferralRepositoryPropagatesClientError(t *testing.T) {
	clientErr := errors.New("bolt connection refused")
	repo := NewReferralRepository(NewMemoryClient().WithError(clientErr))

	if _, err := repo.ListInvitees(context.Background(), "user-1"); !errors.Is(err, clientErr) {
		t.Fatalf("expected wrapped client error, got %v", err)
	}
}
