package catalog

import (
	"context"
	"testing"

	"sukuyo/domain/mansion"
	"sukuyo/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalog(t *testing.T) {
	repo, err := NewEmbedded()
	require.NoError(t, err)
	ctx := context.Background()

	first, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "婁宿", first.Name)
	assert.Equal(t, "ろうしゅく", first.Reading)
	assert.Equal(t, 0.0, first.RangeStart)
	assert.Equal(t, 13.33, first.RangeEnd)

	last, err := repo.Get(ctx, 27)
	require.NoError(t, err)
	assert.Equal(t, "奎宿", last.Name)
	assert.Equal(t, 360.0, last.RangeEnd)
}

func TestEmbeddedOutOfRange(t *testing.T) {
	repo, err := NewEmbedded()
	require.NoError(t, err)

	for _, id := range []int{0, 28, -1} {
		_, err := repo.Get(context.Background(), id)
		require.Error(t, err)
		assert.Equal(t, errors.CodeOutOfRange, errors.GetCode(err))
	}
}

func TestEmbeddedFindByName(t *testing.T) {
	repo, err := NewEmbedded()
	require.NoError(t, err)
	ctx := context.Background()

	r, err := repo.FindByName(ctx, "昴宿")
	require.NoError(t, err)
	assert.Equal(t, 3, r.ID)

	_, err = repo.FindByName(ctx, "牛宿")
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

// every catalog name except 牛宿 belongs to the 28-mansion cycle
func TestCatalogCoversCycle(t *testing.T) {
	repo, err := NewEmbedded()
	require.NoError(t, err)

	for _, m := range mansion.All() {
		_, err := repo.FindByName(context.Background(), m.Name)
		if m.Name == "牛宿" {
			assert.Error(t, err)
			continue
		}
		assert.NoError(t, err, m.Name)
	}
}

func TestEmbeddedReturnsCopies(t *testing.T) {
	repo, err := NewEmbedded()
	require.NoError(t, err)
	ctx := context.Background()

	r, err := repo.Get(ctx, 5)
	require.NoError(t, err)
	r.Name = "mutated"

	again, err := repo.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "觜宿", again.Name)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 27)
}

func TestParseRejectsBadDocuments(t *testing.T) {
	_, err := Parse([]byte("shuku: []"))
	assert.Error(t, err)

	_, err = Parse([]byte("shuku: ["))
	assert.Error(t, err)
}
