package cart_test

import (
	"errors"
	"testing"

	"github.com/junaidrashid-git/storefront-api/cart"
	"github.com/junaidrashid-git/storefront-api/database/databasetest"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingCartIsEmpty(t *testing.T) {
	db := databasetest.New(t)

	c, err := cart.Load(db, "nobody")
	require.NoError(t, err)
	assert.True(t, c.Empty())
}

func TestUpdatePersistsLinesInOrder(t *testing.T) {
	db := databasetest.New(t)

	_, err := cart.Update(db, "u1", func(c *cart.Cart) error {
		c.Add(cart.Line{ProductID: 5, Name: "Mug", Price: 4.5}, 1)
		c.Add(cart.Line{ProductID: 2, Name: "Plate", Price: 8}, 2)
		return nil
	})
	require.NoError(t, err)

	_, err = cart.Update(db, "u1", func(c *cart.Cart) error {
		c.Add(cart.Line{ProductID: 5, Name: "Mug", Price: 4.5}, 1)
		return nil
	})
	require.NoError(t, err)

	c, err := cart.Load(db, "u1")
	require.NoError(t, err)
	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, uint(5), lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, uint(2), lines[1].ProductID)

	var carts int64
	db.Model(&models.Cart{}).Count(&carts)
	assert.EqualValues(t, 1, carts)
}

func TestUpdateRollsBackOnError(t *testing.T) {
	db := databasetest.New(t)
	boom := errors.New("boom")

	_, err := cart.Update(db, "u1", func(c *cart.Cart) error {
		c.Add(cart.Line{ProductID: 1}, 1)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	c, err := cart.Load(db, "u1")
	require.NoError(t, err)
	assert.True(t, c.Empty())
}

func TestMergeOwners(t *testing.T) {
	db := databasetest.New(t)

	_, err := cart.Update(db, "guest_1", func(c *cart.Cart) error {
		c.Add(cart.Line{ProductID: 1, Price: 10}, 2)
		c.Add(cart.Line{ProductID: 3, Price: 5}, 1)
		return nil
	})
	require.NoError(t, err)
	_, err = cart.Update(db, "u1", func(c *cart.Cart) error {
		c.Add(cart.Line{ProductID: 1, Price: 10}, 1)
		return nil
	})
	require.NoError(t, err)

	merged, err := cart.MergeOwners(db, "guest_1", "u1")
	require.NoError(t, err)
	assert.True(t, merged)

	user, err := cart.Load(db, "u1")
	require.NoError(t, err)
	require.Equal(t, 2, user.Len())
	assert.Equal(t, 3, user.Lines()[0].Quantity)
	assert.Equal(t, "35", user.Total().String())

	guest, err := cart.Load(db, "guest_1")
	require.NoError(t, err)
	assert.True(t, guest.Empty())

	merged, err = cart.MergeOwners(db, "guest_1", "u1")
	require.NoError(t, err)
	assert.False(t, merged, "nothing left to merge")
}
