package internal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/internal"
)

// marker returns a stage appending s on the way in and s+"-out" on the
// way out, making composition order observable in the body.
func marker(s string) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if _, err := c.WriteString(s + ">"); err != nil {
				return err
			}
			if err := next(c); err != nil {
				return err
			}
			_, err := c.WriteString("<" + s)
			return err
		}
	}
}

func TestBuilderOrdering(t *testing.T) {
	t.Parallel()

	t.Run("registration order is execution order", func(t *testing.T) {
		t.Parallel()

		p := internal.NewBuilder().
			Use(marker("a")).
			Use(marker("b")).
			Use(marker("c")).
			Build()

		c := internal.NewContext("/")
		require.NoError(t, p.Invoke(c))
		require.Equal(t, "a>b>c><c<b<a", string(c.Body()))
	})

	t.Run("first registered stage regains control last", func(t *testing.T) {
		t.Parallel()

		p := internal.NewBuilder().
			Use(marker("outer")).
			Use(marker("inner")).
			Fallback(func(c internal.Context) error {
				_, err := c.WriteString("end")
				return err
			}).
			Build()

		c := internal.NewContext("/")
		require.NoError(t, p.Invoke(c))
		require.Equal(t, "outer>inner>end<inner<outer", string(c.Body()))
	})
}

func TestBuilderShortCircuit(t *testing.T) {
	t.Parallel()

	t.Run("stage that skips its continuation stops the chain", func(t *testing.T) {
		t.Parallel()

		var reached bool
		p := internal.NewBuilder().
			Use(marker("a")).
			Use(func(internal.HandlerFunc) internal.HandlerFunc {
				return func(c internal.Context) error {
					_, err := c.WriteString("stop")
					return err
				}
			}).
			Use(func(next internal.HandlerFunc) internal.HandlerFunc {
				return func(c internal.Context) error {
					reached = true
					return next(c)
				}
			}).
			Build()

		c := internal.NewContext("/")
		require.NoError(t, p.Invoke(c))
		require.False(t, reached)
		require.Equal(t, "a>stop<a", string(c.Body()))
	})

	t.Run("short-circuit without error is not a fault", func(t *testing.T) {
		t.Parallel()

		p := internal.NewBuilder().
			Handle(func(c internal.Context) error {
				return c.String(204, "")
			}).
			Build()

		c := internal.NewContext("/")
		require.NoError(t, p.Invoke(c))
		require.Equal(t, 204, c.Status())
	})
}

func TestBuilderHandle(t *testing.T) {
	t.Parallel()

	t.Run("terminal stage never calls later stages", func(t *testing.T) {
		t.Parallel()

		var afterRan bool
		p := internal.NewBuilder().
			Handle(func(c internal.Context) error {
				_, err := c.WriteString("terminal")
				return err
			}).
			Use(func(next internal.HandlerFunc) internal.HandlerFunc {
				return func(c internal.Context) error {
					afterRan = true
					return next(c)
				}
			}).
			Build()

		c := internal.NewContext("/")
		require.NoError(t, p.Invoke(c))
		require.False(t, afterRan)
		require.Equal(t, "terminal", string(c.Body()))
	})
}

func TestBuilderFallback(t *testing.T) {
	t.Parallel()

	t.Run("default fallback is a no-op", func(t *testing.T) {
		t.Parallel()

		p := internal.NewBuilder().
			Use(marker("a")).
			Build()

		c := internal.NewContext("/")
		require.NoError(t, p.Invoke(c))
		require.Equal(t, "a><a", string(c.Body()))
	})

	t.Run("empty builder produces a working no-op pipeline", func(t *testing.T) {
		t.Parallel()

		p := internal.NewBuilder().Build()

		c := internal.NewContext("/")
		require.NoError(t, p.Invoke(c))
		require.Empty(t, c.Body())
		require.False(t, c.Written())
	})
}

func TestBuilderBuild(t *testing.T) {
	t.Parallel()

	t.Run("building twice yields identical behavior", func(t *testing.T) {
		t.Parallel()

		b := internal.NewBuilder().
			Use(marker("a")).
			Use(marker("b")).
			Fallback(func(c internal.Context) error {
				_, err := c.WriteString("end")
				return err
			})

		p1 := b.Build()
		p2 := b.Build()

		c1 := internal.NewContext("/")
		c2 := internal.NewContext("/")
		require.NoError(t, p1.Invoke(c1))
		require.NoError(t, p2.Invoke(c2))
		require.Equal(t, c1.Body(), c2.Body())
	})

	t.Run("pipeline is safe for concurrent requests", func(t *testing.T) {
		t.Parallel()

		p := internal.NewBuilder().
			Use(marker("a")).
			Fallback(func(c internal.Context) error {
				_, err := c.WriteString(c.Path())
				return err
			}).
			Build()

		done := make(chan struct{})
		for i := 0; i < 8; i++ {
			go func() {
				defer func() { done <- struct{}{} }()
				c := internal.NewContext("/x")
				_ = p.Invoke(c)
			}()
		}
		for i := 0; i < 8; i++ {
			<-done
		}
	})
}
