package internal_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/internal"
)

func TestPathEquals(t *testing.T) {
	t.Parallel()

	pred := internal.PathEquals("/hi")

	require.True(t, pred(internal.NewContext("/hi")))
	require.False(t, pred(internal.NewContext("/hi/there")))
	require.False(t, pred(internal.NewContext("/high")))
	require.False(t, pred(internal.NewContext("/")))
}

func TestPathPrefix(t *testing.T) {
	t.Parallel()

	t.Run("matches whole segments only", func(t *testing.T) {
		t.Parallel()

		pred := internal.PathPrefix("/use")
		require.True(t, pred(internal.NewContext("/use")))
		require.True(t, pred(internal.NewContext("/use/sub")))
		require.False(t, pred(internal.NewContext("/useother")))
	})

	t.Run("trailing slash on prefix is ignored", func(t *testing.T) {
		t.Parallel()

		pred := internal.PathPrefix("/api/")
		require.True(t, pred(internal.NewContext("/api")))
		require.True(t, pred(internal.NewContext("/api/v1")))
	})

	t.Run("empty prefix matches everything", func(t *testing.T) {
		t.Parallel()

		pred := internal.PathPrefix("")
		require.True(t, pred(internal.NewContext("/anything")))
	})
}

func TestQueryFlag(t *testing.T) {
	t.Parallel()

	pred := internal.QueryFlag("debug")

	withFlag := internal.NewContext("/", internal.WithQuery(url.Values{"debug": {""}}))
	withValue := internal.NewContext("/", internal.WithQuery(url.Values{"debug": {"1"}}))
	without := internal.NewContext("/")

	require.True(t, pred(withFlag))
	require.True(t, pred(withValue))
	require.False(t, pred(without))
}
