package cancel

import "testing"

func TestToken_StartsUncancelled(t *testing.T) {
	token := NewToken()

	if token.Cancelled() {
		t.Error("new token should not be cancelled")
	}
}

func TestToken_Cancel(t *testing.T) {
	token := NewToken()

	token.Cancel()

	if !token.Cancelled() {
		t.Error("expected token to be cancelled")
	}

	// Idempotent
	token.Cancel()
	if !token.Cancelled() {
		t.Error("expected token to stay cancelled")
	}
}

func TestToken_CopiesShareFlag(t *testing.T) {
	token := NewToken()
	clone := token

	clone.Cancel()

	if !token.Cancelled() {
		t.Error("expected cancellation through a copy to be visible on the original")
	}
}

func TestToken_ZeroValueIsInert(t *testing.T) {
	var token Token

	token.Cancel()

	if token.Cancelled() {
		t.Error("zero token must never report cancelled")
	}
}

func TestToken_CrossGoroutineVisibility(t *testing.T) {
	token := NewToken()
	done := make(chan struct{})

	go func() {
		token.Cancel()
		close(done)
	}()

	<-done
	if !token.Cancelled() {
		t.Error("expected cancellation to be visible across goroutines")
	}
}
