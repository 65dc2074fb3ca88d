package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	cases := []struct {
		in   string
		want Type
	}{
		{"product", TypeProduct},
		{"products", TypeProduct},
		{"article", TypeArticle},
		{"articles", TypeArticle},
	}
	for _, tc := range cases {
		got, err := ParseType(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestParseTypeUnknown(t *testing.T) {
	for _, in := range []string{"", "user", "Product", "articless"} {
		_, err := ParseType(in)
		assert.ErrorIs(t, err, ErrUnknownType, in)
	}
}
