//go:build unit

package rsvp_test

import (
	"testing"

	"mokka-api/internal/domain/rsvp"
	"mokka-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.RSVPBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewRSVPBuilder()
			tc.mutate(b)
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestRSVP(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewRSVPBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "Taro Tanaka", actual.Name())
		assert.Equal(t, "taro@example.com", actual.Email())
		assert.Equal(t, int32(2), actual.Seats())
		assert.Equal(t, rsvp.StatusPending, actual.Status())
		assert.Len(t, actual.Code(), rsvp.ReservationCodeLength)
	})

	t.Run("name validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty name",
				mutate: func(b *builder.RSVPBuilder) { b.WithName("") },
				errIs:  rsvp.ErrEmptyName,
			},
			{
				name:   "whitespace only name",
				mutate: func(b *builder.RSVPBuilder) { b.WithName("   ") },
				errIs:  rsvp.ErrEmptyName,
			},
			{
				name:   "single character name",
				mutate: func(b *builder.RSVPBuilder) { b.WithName("a") },
			},
		})
	})

	t.Run("email validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "missing at sign",
				mutate: func(b *builder.RSVPBuilder) { b.WithEmail("not-an-email") },
				errIs:  rsvp.ErrInvalidEmail,
			},
			{
				name:   "empty email",
				mutate: func(b *builder.RSVPBuilder) { b.WithEmail("") },
				errIs:  rsvp.ErrInvalidEmail,
			},
			{
				name:   "valid email with subdomain",
				mutate: func(b *builder.RSVPBuilder) { b.WithEmail("taro@mail.example.com") },
			},
		})
	})

	t.Run("seats validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "zero seats",
				mutate: func(b *builder.RSVPBuilder) { b.WithSeats(0) },
				errIs:  rsvp.ErrInvalidSeats,
			},
			{
				name:   "negative seats",
				mutate: func(b *builder.RSVPBuilder) { b.WithSeats(-1) },
				errIs:  rsvp.ErrInvalidSeats,
			},
			{
				name:   "single seat",
				mutate: func(b *builder.RSVPBuilder) { b.WithSeats(1) },
			},
			{
				name:   "large party",
				mutate: func(b *builder.RSVPBuilder) { b.WithSeats(40) },
			},
		})
	})

	t.Run("email normalization", func(t *testing.T) {
		actual, err := builder.NewRSVPBuilder().WithEmail("  Taro@EXAMPLE.com ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "taro@example.com", actual.Email())
	})

	t.Run("name trimming", func(t *testing.T) {
		actual, err := builder.NewRSVPBuilder().WithName("  Taro Tanaka  ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "Taro Tanaka", actual.Name())
	})

	t.Run("regenerate replaces the code", func(t *testing.T) {
		actual, err := builder.NewRSVPBuilder().BuildDomain()
		require.NoError(t, err)

		before := actual.Code()
		actual.Regenerate()
		after := actual.Code()

		assert.Len(t, after, rsvp.ReservationCodeLength)
		// The alphabet has 36^8 combinations; a collision here means the
		// generator is broken, not that we got unlucky.
		assert.NotEqual(t, before, after)
	})
}

func TestNewReservationCode(t *testing.T) {
	code := rsvp.NewReservationCode()
	assert.Len(t, code, rsvp.ReservationCodeLength)
	for _, c := range code {
		ok := (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		assert.True(t, ok, "unexpected character %q in reservation code", c)
	}
}

func TestNewVerificationCode(t *testing.T) {
	code := rsvp.NewVerificationCode()
	assert.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9', "unexpected character %q in verification code", c)
	}
}

func TestStatus(t *testing.T) {
	t.Run("validity", func(t *testing.T) {
		assert.True(t, rsvp.StatusPending.IsValid())
		assert.True(t, rsvp.StatusConfirmed.IsValid())
		assert.True(t, rsvp.StatusCancelled.IsValid())
		assert.False(t, rsvp.Status("UNKNOWN").IsValid())
		assert.False(t, rsvp.Status("").IsValid())
	})

	t.Run("activity", func(t *testing.T) {
		assert.True(t, rsvp.StatusPending.IsActive())
		assert.True(t, rsvp.StatusConfirmed.IsActive())
		assert.False(t, rsvp.StatusCancelled.IsActive())
	})
}

func TestAction(t *testing.T) {
	assert.True(t, rsvp.ActionCancel.IsValid())
	assert.True(t, rsvp.ActionModify.IsValid())
	assert.False(t, rsvp.Action("delete").IsValid())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "taro@example.com", rsvp.NormalizeEmail(" TARO@Example.COM "))
	assert.Equal(t, "taro@example.com", rsvp.NormalizeEmail("taro@example.com"))
}
