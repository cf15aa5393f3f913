package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/picker/pkg/machine"
	"github.com/stretchr/testify/assert"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager()
	ctx := context.Background()
	count := 1000

	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_, _ = mgr.Create(ctx, sid, machine.KindTracker)
		_ = mgr.Delete(ctx, sid)
	}

	assert.Empty(t, mgr.locks, "locks must be released after use")
	assert.Empty(t, mgr.sessions)
}
