package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTarget_Set(t *testing.T) {
	t.Run("drops banned keys", func(t *testing.T) {
		target := NewTarget("ticket")
		target.Set("REQ", "SOMETHING")
		assert.Empty(t, target.Attributes)
	})

	t.Run("drops empty values", func(t *testing.T) {
		target := NewTarget("ticket")
		target.Set("STATUS", "")
		assert.Empty(t, target.Attributes)
	})

	t.Run("drops values equal to the token itself", func(t *testing.T) {
		target := NewTarget("ticket")
		target.Set("STATUS", "Ticket")
		assert.Empty(t, target.Attributes)
	})

	t.Run("rejects attributes not allowed for the target token", func(t *testing.T) {
		target := NewTarget("ticket")
		target.Set("DURATION", "30m")
		assert.Empty(t, target.Attributes)
	})

	t.Run("accepts allowed attributes", func(t *testing.T) {
		target := NewTarget("ticket")
		target.Set("status", "open")
		assert.Equal(t, "open", target.Attributes["STATUS"])
	})

	t.Run("first writer wins", func(t *testing.T) {
		target := NewTarget("ticket")
		target.Set("STATUS", "open")
		target.Set("STATUS", "closed")
		assert.Equal(t, "open", target.Attributes["STATUS"])
	})
}

func TestTarget_BuildToken(t *testing.T) {
	t.Run("omits the default domain", func(t *testing.T) {
		target := NewTarget("call")
		target.Domain = "support"
		assert.Equal(t, "[TARGET:CALL]", target.BuildToken())
	})

	t.Run("includes a non-default domain", func(t *testing.T) {
		target := NewTarget("call")
		target.Domain = "sales"
		assert.Equal(t, "[TARGET:CALL:DOMAIN=SALES]", target.BuildToken())
	})

	t.Run("omits domain for tokens without a default mapping", func(t *testing.T) {
		target := NewTarget("code")
		target.Domain = "technical"
		assert.Equal(t, "[TARGET:CODE]", target.BuildToken())
	})

	t.Run("never emits the all-zero DEFAULT domain", func(t *testing.T) {
		target := NewTarget("call")
		target.Domain = "DEFAULT"
		assert.Equal(t, "[TARGET:CALL]", target.BuildToken())
	})

	t.Run("sorts attribute keys", func(t *testing.T) {
		target := NewTarget("ticket")
		target.Set("priority", "high")
		target.Set("issue", "billing")
		assert.Equal(t, "[TARGET:TICKET:ISSUE=billing:PRIORITY=high]", target.BuildToken())
	})
}

func TestTarget_Clone(t *testing.T) {
	target := NewTarget("ticket")
	target.Set("status", "open")

	clone := target.Clone()
	clone.Attributes["STATUS"] = "closed"

	assert.Equal(t, "open", target.Attributes["STATUS"])
	assert.Equal(t, "closed", clone.Attributes["STATUS"])
}

func TestTarget_Merge(t *testing.T) {
	primary := NewTarget("ticket")
	primary.Set("status", "open")

	other := NewTarget("ticket")
	other.Set("priority", "high")
	other.Set("status", "closed")

	primary.Merge(other)

	assert.Equal(t, "open", primary.Attributes["STATUS"], "first-writer-wins across merge")
	assert.Equal(t, "high", primary.Attributes["PRIORITY"])
}

func TestNormalizeTargets(t *testing.T) {
	t.Run("empty input returns nil", func(t *testing.T) {
		assert.Nil(t, NormalizeTargets(nil))
	})

	t.Run("picks the highest-priority token and merges the rest", func(t *testing.T) {
		call := NewTarget("call")
		call.Set("duration", "30m")
		ticket := NewTarget("ticket")
		ticket.Set("priority", "high")

		primary := NormalizeTargets([]*Target{ticket, call})

		assert.Equal(t, "CALL", primary.Token)
		assert.Equal(t, "30m", primary.Attributes["DURATION"])
	})
}
