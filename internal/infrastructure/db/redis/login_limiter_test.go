package redis

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
)

func TestLoginLimiter_TooManyFailures(t *testing.T) {
	client, mock := redismock.NewClientMock()
	limiter := NewLoginLimiter(client)

	mock.ExpectGet("login_fail:alice@example.com").RedisNil()
	blocked, err := limiter.TooManyFailures(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blocked {
		t.Fatalf("no failures recorded, should not be blocked")
	}

	mock.ExpectGet("login_fail:alice@example.com").SetVal("4")
	blocked, err = limiter.TooManyFailures(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blocked {
		t.Fatalf("4 failures is under the budget")
	}

	mock.ExpectGet("login_fail:alice@example.com").SetVal("5")
	blocked, err = limiter.TooManyFailures(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !blocked {
		t.Fatalf("5 failures should block")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoginLimiter_RecordFailure_StartsWindow(t *testing.T) {
	client, mock := redismock.NewClientMock()
	limiter := NewLoginLimiter(client)

	// First failure starts the window.
	mock.ExpectIncr("login_fail:bob@example.com").SetVal(1)
	mock.ExpectExpire("login_fail:bob@example.com", limiterWindow).SetVal(true)
	if err := limiter.RecordFailure(context.Background(), "bob@example.com"); err != nil {
		t.Fatalf("record failure: %v", err)
	}

	// Later failures only increment.
	mock.ExpectIncr("login_fail:bob@example.com").SetVal(2)
	if err := limiter.RecordFailure(context.Background(), "bob@example.com"); err != nil {
		t.Fatalf("record failure: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoginLimiter_Reset(t *testing.T) {
	client, mock := redismock.NewClientMock()
	limiter := NewLoginLimiter(client)

	mock.ExpectDel("login_fail:carol@example.com").SetVal(1)
	if err := limiter.Reset(context.Background(), "carol@example.com"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
