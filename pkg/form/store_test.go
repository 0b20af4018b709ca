package form

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/DSACMS/enrollment-form-api/pkg/candidate"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardRecord(t *testing.T) candidate.Record {
	t.Helper()

	var rec candidate.Record
	require.NoError(t, json.Unmarshal([]byte(`{
		"_id": "665f1c2e9b",
		"batchId": {"code": "FS-24"},
		"fullName": "Asha Verma",
		"contactNumber": "9876543210",
		"aadharCard": "123412341234",
		"panCard": "ABCDE1234F",
		"yearOfPassing": 2021,
		"selectedCourse": ["Java Backend"],
		"paymentType": "Partial Payment",
		"paymentMode": "Cash",
		"partialPaidAmount": "5000"
	}`), &rec))
	return rec
}

func storeRoundTrip(t *testing.T, store Store) {
	t.Helper()

	ctx := context.Background()
	h := newHarness(Options{})
	s := h.form.Open("665f1c2e9b", dashboardRecord(t))
	s.Step = StepSelection

	require.NoError(t, store.Save(ctx, s))

	// mutations after save do not leak into the stored copy
	s.Record.FullName = "changed"

	loaded, err := store.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", loaded.Record.FullName)
	assert.Equal(t, StepSelection, loaded.Step)
	assert.Equal(t, 35000.0, loaded.Record.RemainingAmount)
	assert.JSONEq(t, `{"code":"FS-24"}`, string(loaded.Record.Extra["batchId"]))
	assert.Len(t, loaded.Errors, 5)

	require.NoError(t, store.Delete(ctx, s.ID))

	_, err = store.Load(ctx, s.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	storeRoundTrip(t, NewMemoryStore())
}

func TestRedisStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(context.Background()).Err())

	storeRoundTrip(t, NewRedisStore(rdb, time.Minute))
}

func TestRedisStore_SetsTTL(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewRedisStore(rdb, time.Minute)
	s := newHarness(Options{}).form.Open("cand-ttl", candidate.Record{})
	require.NoError(t, store.Save(ctx, s))
	t.Cleanup(func() { _ = store.Delete(ctx, s.ID) })

	ttl, err := rdb.TTL(ctx, "form:session:"+s.ID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)
}
