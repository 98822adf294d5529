package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/indieneer/backend/internal/apperrors"
)

func strPtr(s string) *string { return &s }

func TestPatchPlatformFields(t *testing.T) {
	t.Run("empty patch yields no fields", func(t *testing.T) {
		patch := PatchPlatform{}
		assert.Empty(t, patch.Fields())
	})

	t.Run("name change rewrites slug", func(t *testing.T) {
		patch := PatchPlatform{Name: strPtr("Epic Games Store")}
		fields := patch.Fields()

		assert.Equal(t, "Epic Games Store", fields["name"])
		assert.Equal(t, "epic-games-store", fields["slug"])
	})

	t.Run("enabled false is still written", func(t *testing.T) {
		enabled := false
		patch := PatchPlatform{Enabled: &enabled}
		fields := patch.Fields()

		assert.Equal(t, false, fields["enabled"])
		assert.NotContains(t, fields, "name")
	})
}

func TestPatchProductFields(t *testing.T) {
	t.Run("coerces reference lists to object ids", func(t *testing.T) {
		platformID := primitive.NewObjectID()
		patch := PatchProduct{Platforms: []string{platformID.Hex()}}

		fields, err := patch.Fields()
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{platformID}, fields["platforms"])
	})

	t.Run("invalid reference id fails", func(t *testing.T) {
		patch := PatchProduct{Genres: []string{"not-an-id"}}

		_, err := patch.Fields()
		var invalidID *apperrors.InvalidIDError
		require.ErrorAs(t, err, &invalidID)
		assert.Equal(t, "not-an-id", invalidID.ID)
	})

	t.Run("name change rewrites slug", func(t *testing.T) {
		patch := PatchProduct{Name: strPtr("Stardew Valley")}

		fields, err := patch.Fields()
		require.NoError(t, err)
		assert.Equal(t, "stardew-valley", fields["slug"])
	})
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "dev@indieneer.com", NormalizeEmail("Dev@Indieneer.COM"))
	assert.Equal(t, "dev@indieneer.com", NormalizeEmail("  dev@indieneer.com "))
	assert.Equal(t, "dev@indieneer.com", NormalizeEmail("dev@indieneer.com"))
}

func TestPatchProfileFields(t *testing.T) {
	t.Run("email is stored lowercase", func(t *testing.T) {
		patch := PatchProfile{Email: strPtr("Dev@Indieneer.COM")}
		fields := patch.Fields()

		assert.Equal(t, "dev@indieneer.com", fields["email"])
	})

	t.Run("empty patch yields no fields", func(t *testing.T) {
		patch := PatchProfile{}
		assert.Empty(t, patch.Fields())
	})
}

func TestPatchGuessGameFields(t *testing.T) {
	productID := primitive.NewObjectID()

	fields, err := (&PatchGuessGame{ProductID: strPtr(productID.Hex())}).Fields()
	require.NoError(t, err)
	assert.Equal(t, productID, fields["product_id"])

	_, err = (&PatchGuessGame{ProductID: strPtr("bogus")}).Fields()
	assert.Error(t, err)
}

func TestObjectIDFromHex(t *testing.T) {
	oid := primitive.NewObjectID()

	parsed, err := ObjectIDFromHex(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, parsed)

	_, err = ObjectIDFromHex("nope")
	var invalidID *apperrors.InvalidIDError
	assert.ErrorAs(t, err, &invalidID)
}
