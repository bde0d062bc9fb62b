package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextNumber(t *testing.T) {
	period := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "INV-2026-0001", NextNumber("INV", period, nil))

	existing := []string{"INV-2026-0001", "INV-2026-0002", "INV-2025-0009", "PO-2026-0001"}
	assert.Equal(t, "INV-2026-0003", NextNumber("INV", period, existing),
		"only the current year's series counts")
	assert.Equal(t, "PO-2026-0002", NextNumber("PO", period, existing))
}
