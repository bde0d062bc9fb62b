package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikePrefixEscapesWildcards(t *testing.T) {
	assert.Equal(t, `clients:%`, LikePrefix("clients"))
	assert.Equal(t, `purchase\_orders:%`, LikePrefix("purchase_orders"))
	assert.Equal(t, `user\_groups:%`, LikePrefix("user_groups"))
	assert.Equal(t, `100\%\_sure:%`, LikePrefix(`100%_sure`))
	assert.Equal(t, `a\\b:%`, LikePrefix(`a\b`))
}
