package adminController_test

import (
	"testing"

	adminController "github.com/junaidrashid-git/storefront-api/controllers/admin"
	"github.com/junaidrashid-git/storefront-api/auth"
	"github.com/junaidrashid-git/storefront-api/database/databasetest"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAdmins(t *testing.T) {
	db := databasetest.New(t)
	require.NoError(t, db.Create(&models.User{ID: "a1", Email: "boss@example.com", DisplayName: "Boss"}).Error)
	require.NoError(t, db.Create(&models.User{ID: "u1", Email: "shopper@example.com"}).Error)

	accounts, err := adminController.ListAdmins(db, auth.NewAdminList([]string{"Boss@Example.com", "new@example.com"}))
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, "boss@example.com", accounts[0].Email)
	assert.True(t, accounts[0].Registered)
	require.NotNil(t, accounts[0].User)
	assert.Equal(t, "Boss", accounts[0].User.DisplayName)

	assert.Equal(t, "new@example.com", accounts[1].Email)
	assert.False(t, accounts[1].Registered)
	assert.Nil(t, accounts[1].User)

	empty, err := adminController.ListAdmins(db, auth.NewAdminList(nil))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
